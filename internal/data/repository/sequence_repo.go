package repository

import (
	"context"
	"fmt"
	"strings"

	"fleet-rental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SequenceRepository hands out human-readable references like RENT-00042.
type SequenceRepository interface {
	Next(ctx context.Context, code string) (string, error)
}

type sequenceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSequenceRepository(db database.PgxIface, log *zap.Logger) SequenceRepository {
	return &sequenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "sequence")),
	}
}

func (r *sequenceRepository) Next(ctx context.Context, code string) (string, error) {
	// Row-level lock via UPDATE makes concurrent callers queue up.
	query := `
		UPDATE sequences
		SET next_number = next_number + 1
		WHERE code = $1
		RETURNING prefix, padding, next_number - 1
	`

	var prefix string
	var padding int
	var number int64
	err := r.db.QueryRow(ctx, query, code).Scan(&prefix, &padding, &number)

	if err == pgx.ErrNoRows {
		// First use of the code: seed a default sequence.
		seed := `
			INSERT INTO sequences (code, prefix, padding, next_number)
			VALUES ($1, $2, 5, 2)
			ON CONFLICT (code) DO UPDATE SET next_number = sequences.next_number + 1
			RETURNING prefix, padding, next_number - 1
		`
		defaultPrefix := strings.ToUpper(code) + "-"
		err = r.db.QueryRow(ctx, seed, code, defaultPrefix).Scan(&prefix, &padding, &number)
	}

	if err != nil {
		r.log.Error("Failed to advance sequence",
			zap.Error(err),
			zap.String("code", code),
		)
		return "", fmt.Errorf("advance sequence %s: %w", code, err)
	}

	return fmt.Sprintf("%s%0*d", prefix, padding, number), nil
}
