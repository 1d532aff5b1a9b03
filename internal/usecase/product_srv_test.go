package usecase

import (
	"context"
	"testing"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/rental"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProductListOnlyTracked(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Crane", 2)
	env.seedProduct(t, "Excavator", 20)

	untracked := uuid.New()
	env.store.products[untracked] = &entity.Product{
		Base: entity.Base{ID: untracked},
		Name: "Consumable",
	}

	resp, err := env.product.List(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	require.Equal(t, int64(2), resp.Pagination.Total)
	require.Equal(t, "Crane", resp.Data[0].Name)
	require.Equal(t, "Excavator", resp.Data[1].Name)
}

func TestProductCapacity(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct(t, "Excavator", 20)

	resp, err := env.product.Capacity(context.Background(), productID.String(), env.companyID)
	require.NoError(t, err)
	require.Equal(t, productID.String(), resp.ProductID)
	require.True(t, resp.FleetCapacity.Equal(decimal.NewFromInt(20)))
}

func TestProductCapacityUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.product.Capacity(context.Background(), uuid.NewString(), env.companyID)
	require.ErrorIs(t, err, rental.ErrNotFound)

	_, err = env.product.Capacity(context.Background(), "nope", env.companyID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid product ID format")
}
