package usecase

import (
	"context"
	"time"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// repositoryPickingCreator writes pickings through the repository. It is the
// default PickingCreator; external movement systems can plug in their own.
type repositoryPickingCreator struct {
	pickings repository.PickingRepository
	log      *zap.Logger
}

func NewRepositoryPickingCreator(pickings repository.PickingRepository, log *zap.Logger) PickingCreator {
	return &repositoryPickingCreator{
		pickings: pickings,
		log:      log.With(zap.String("service", "picking")),
	}
}

func (c *repositoryPickingCreator) CreateOutbound(ctx context.Context, booking *entity.Booking) error {
	return c.create(ctx, booking, entity.PickingDirectionOut)
}

func (c *repositoryPickingCreator) CreateReturn(ctx context.Context, booking *entity.Booking) error {
	return c.create(ctx, booking, entity.PickingDirectionIn)
}

func (c *repositoryPickingCreator) create(ctx context.Context, booking *entity.Booking, direction entity.PickingDirection) error {
	now := time.Now()
	picking := &entity.Picking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: booking.ID,
		Direction: direction,
		State:     entity.PickingStatePending,
	}

	if err := c.pickings.Create(ctx, picking); err != nil {
		return err
	}

	c.log.Info("Picking created",
		zap.String("picking_id", picking.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("direction", string(direction)),
	)

	return nil
}
