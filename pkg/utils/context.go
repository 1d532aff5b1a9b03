package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	CompanyIDKey contextKey = "company_id"
)

// GetCompanyIDFromContext returns the company scope of the request. Every
// availability figure is company-scoped; there is no ambient global company.
func GetCompanyIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	companyVal := ctx.Value(CompanyIDKey)
	if companyVal == nil {
		return uuid.Nil, false
	}

	companyStr, ok := companyVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	companyID, err := uuid.Parse(companyStr)
	if err != nil {
		return uuid.Nil, false
	}

	return companyID, true
}

func SetCompanyContext(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, CompanyIDKey, companyID.String())
}
