package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

func newLocationFixture(t *testing.T) (*memory.Store, *usecase.LocationUseCase) {
	t.Helper()
	store := memory.NewStore()
	return store, usecase.NewLocationUseCase(store, store.Locations())
}

func TestLocationCreate_SinCamposObligatoriosFalla(t *testing.T) {
	_, uc := newLocationFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Sin ID"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.Create(ctx, dto.CreateLocationRequest{LocationID: "A"})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestLocationCreate_IDDuplicadoFalla(t *testing.T) {
	_, uc := newLocationFixture(t)
	ctx := context.Background()

	in := dto.CreateLocationRequest{LocationID: "A", Name: "Bodega Norte"}
	_, err := uc.Create(ctx, in)
	require.NoError(t, err)

	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocationCreate_YGetByID(t *testing.T) {
	_, uc := newLocationFixture(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateLocationRequest{
		LocationID: "A", Name: "Bodega Norte", Address: "Calle 10 # 5-32",
	})
	require.NoError(t, err)
	assert.Equal(t, "A", out.LocationID)
	assert.False(t, out.CreatedAt.IsZero())

	got, err := uc.GetByID(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Calle 10 # 5-32", got.Address)
}

func TestLocationGetByID_NoExisteDevuelveNil(t *testing.T) {
	_, uc := newLocationFixture(t)
	got, err := uc.GetByID(context.Background(), "NO-EXISTE")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocationUpdate_PatchParcial(t *testing.T) {
	_, uc := newLocationFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLocationRequest{
		LocationID: "A", Name: "Bodega Norte", Address: "Calle 10",
	})
	require.NoError(t, err)

	name := "Bodega Central"
	out, err := uc.Update(ctx, "A", dto.UpdateLocationRequest{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Bodega Central", out.Name)
	assert.Equal(t, "Calle 10", out.Address)
}

func TestLocationUpdate_NoExisteDevuelveNil(t *testing.T) {
	_, uc := newLocationFixture(t)
	name := "X"
	out, err := uc.Update(context.Background(), "NO-EXISTE", dto.UpdateLocationRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestLocationDelete_ReferenciadaFalla(t *testing.T) {
	store, uc := newLocationFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLocationRequest{LocationID: "A", Name: "Bodega"})
	require.NoError(t, err)

	to := "A"
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
		ID: "MV-1", Timestamp: time.Now().UTC(), ToLocation: &to, ProductID: "P1", Qty: 3,
	}))

	assert.ErrorIs(t, uc.Delete(ctx, "A"), domain.ErrConflict)
}

func TestLocationDelete_SinReferenciasElimina(t *testing.T) {
	_, uc := newLocationFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLocationRequest{LocationID: "A", Name: "Bodega"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "A"))
	assert.ErrorIs(t, uc.Delete(ctx, "A"), domain.ErrNotFound)
}
