package usecase

import (
	"context"
	"testing"
	"time"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/rental"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) seedWarehouse(t *testing.T, code string) *entity.Warehouse {
	t.Helper()

	w := &entity.Warehouse{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		CompanyID: e.companyID,
		Code:      code,
		Name:      code + " warehouse",
	}
	e.store.warehouses[w.ID] = w
	return w
}

func (e *testEnv) seedLocation(t *testing.T, warehouseID uuid.UUID, name string, usage entity.LocationUsage) *entity.Location {
	t.Helper()

	l := &entity.Location{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		WarehouseID: warehouseID,
		CompanyID:   e.companyID,
		Name:        name,
		Usage:       usage,
	}
	e.store.locations[l.ID] = l
	return l
}

func TestWarehouseListWithLocations(t *testing.T) {
	env := newTestEnv(t)
	north := env.seedWarehouse(t, "NORTH")
	env.seedWarehouse(t, "SOUTH")
	env.seedLocation(t, north.ID, "Stock", entity.LocationUsageInternal)
	env.seedLocation(t, north.ID, "Yard", entity.LocationUsageInternal)

	items, err := env.warehouse.List(context.Background(), env.companyID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "NORTH", items[0].Code)
	require.Len(t, items[0].Locations, 2)
	require.Empty(t, items[1].Locations)

	other, err := env.warehouse.List(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestSetRentalLocation(t *testing.T) {
	env := newTestEnv(t)
	warehouse := env.seedWarehouse(t, "NORTH")
	internal := env.seedLocation(t, warehouse.ID, "Rented out", entity.LocationUsageInternal)

	resp, err := env.warehouse.SetRentalLocation(context.Background(), warehouse.ID.String(),
		&request.SetRentalLocationRequest{LocationID: internal.ID.String()})
	require.NoError(t, err)
	require.Equal(t, internal.ID.String(), resp.RentalLocationID)
}

func TestSetRentalLocationRejectsCustomerLocation(t *testing.T) {
	env := newTestEnv(t)
	warehouse := env.seedWarehouse(t, "NORTH")
	customer := env.seedLocation(t, warehouse.ID, "Customer site", entity.LocationUsageCustomer)

	_, err := env.warehouse.SetRentalLocation(context.Background(), warehouse.ID.String(),
		&request.SetRentalLocationRequest{LocationID: customer.ID.String()})

	var validation *rental.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Contains(t, validation.Fields["location_id"], "internal")
}

func TestSetRentalLocationRejectsForeignLocation(t *testing.T) {
	env := newTestEnv(t)
	north := env.seedWarehouse(t, "NORTH")
	south := env.seedWarehouse(t, "SOUTH")
	foreign := env.seedLocation(t, south.ID, "Stock", entity.LocationUsageInternal)

	_, err := env.warehouse.SetRentalLocation(context.Background(), north.ID.String(),
		&request.SetRentalLocationRequest{LocationID: foreign.ID.String()})

	var validation *rental.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Contains(t, validation.Fields["location_id"], "another warehouse")
}

func TestWarehouseGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.warehouse.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, rental.ErrNotFound)
}
