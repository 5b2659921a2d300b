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

func strPtr(s string) *string { return &s }
func qtyPtr(q int64) *int64   { return &q }

// newProductFixture arma el store con las ubicaciones A y B registradas.
func newProductFixture(t *testing.T) (*memory.Store, *usecase.ProductUseCase) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Locations().Create(ctx, &entity.Location{
		ID: "A", Name: "Bodega Norte", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Locations().Create(ctx, &entity.Location{
		ID: "B", Name: "Bodega Sur", CreatedAt: now, UpdatedAt: now,
	}))

	return store, usecase.NewProductUseCase(store, store.Products(), store.Movements())
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestProductCreate_SinCamposObligatoriosFalla(t *testing.T) {
	_, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Sin ID"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.Create(ctx, dto.CreateProductRequest{ProductID: "P1"})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestProductCreate_CantidadNegativaFalla(t *testing.T) {
	_, uc := newProductFixture(t)
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestProductCreate_IDDuplicadoFalla(t *testing.T) {
	_, uc := newProductFixture(t)
	ctx := context.Background()

	in := dto.CreateProductRequest{ProductID: "P1", Name: "Tornillo"}
	_, err := uc.Create(ctx, in)
	require.NoError(t, err)

	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_UbicacionDesconocidaFalla(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("FANTASMA"),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)

	// El rollback no debe dejar el producto a medias.
	p, err := store.Products().GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductCreate_ConUbicacionSintetizaInit(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("A"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.TotalQuantity)

	init, err := store.Movements().GetByID(ctx, entity.InitMovementID("P1"))
	require.NoError(t, err)
	require.NotNil(t, init, "debe existir exactamente un movimiento inicial determinístico")
	assert.Equal(t, int64(5), init.Qty)
	assert.Nil(t, init.FromLocation, "el stock inicial entra al sistema, no sale de ninguna parte")
	assert.Equal(t, "A", *init.ToLocation)

	balance, err := store.Movements().Balance(ctx, "P1", "A")
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
}

func TestProductCreate_SinUbicacionNoSintetizaInit(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5,
	})
	require.NoError(t, err)

	init, err := store.Movements().GetByID(ctx, entity.InitMovementID("P1"))
	require.NoError(t, err)
	assert.Nil(t, init, "sin ubicación no hay entrada que registrar")
}

func TestProductCreate_CantidadCeroNoSintetizaInit(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	init, err := store.Movements().GetByID(ctx, entity.InitMovementID("P1"))
	require.NoError(t, err)
	assert.Nil(t, init)
}

// ── Update: reubicación ──────────────────────────────────────────────────────

func TestProductUpdate_ReubicarTrasladaSaldo(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, "P1", dto.UpdateProductRequest{
		LocationID: dto.NullableString{Set: true, Value: strPtr("B")},
	})
	require.NoError(t, err)
	assert.Equal(t, "B", *out.LocationID)

	balA, _ := store.Movements().Balance(ctx, "P1", "A")
	balB, _ := store.Movements().Balance(ctx, "P1", "B")
	assert.Zero(t, balA, "el saldo restante debe salir de la ubicación anterior")
	assert.Equal(t, int64(5), balB)
}

func TestProductUpdate_ReubicarSinSaldoNoGeneraTraslado(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "P1", dto.UpdateProductRequest{
		LocationID: dto.NullableString{Set: true, Value: strPtr("B")},
	})
	require.NoError(t, err)

	movs, err := store.Movements().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs, "con saldo cero la reubicación es solo un cambio de campo")
}

func TestProductUpdate_ReubicarAUbicacionDesconocidaFalla(t *testing.T) {
	_, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "P1", dto.UpdateProductRequest{
		LocationID: dto.NullableString{Set: true, Value: strPtr("FANTASMA")},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)
}

func TestProductUpdate_QuitarUbicacionNoTraslada(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, "P1", dto.UpdateProductRequest{
		LocationID: dto.NullableString{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, out.LocationID)

	// El ledger conserva el saldo en A aunque el producto ya no declare ubicación.
	balA, _ := store.Movements().Balance(ctx, "P1", "A")
	assert.Equal(t, int64(5), balA)
}

// ── Update: reescritura del INIT ─────────────────────────────────────────────

func TestProductUpdate_TotalQuantityReescribeInit(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "P1", dto.UpdateProductRequest{TotalQuantity: qtyPtr(9)})
	require.NoError(t, err)

	init, err := store.Movements().GetByID(ctx, entity.InitMovementID("P1"))
	require.NoError(t, err)
	require.NotNil(t, init)
	assert.Equal(t, int64(9), init.Qty)

	balance, _ := store.Movements().Balance(ctx, "P1", "A")
	assert.Equal(t, int64(9), balance)
}

func TestProductUpdate_TotalQuantityCeroEliminaInit(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "P1", dto.UpdateProductRequest{TotalQuantity: qtyPtr(0)})
	require.NoError(t, err)

	init, err := store.Movements().GetByID(ctx, entity.InitMovementID("P1"))
	require.NoError(t, err)
	assert.Nil(t, init, "con total cero el movimiento inicial desaparece del ledger")
}

func TestProductUpdate_TotalQuantityNegativaFalla(t *testing.T) {
	_, uc := newProductFixture(t)
	_, err := uc.Update(context.Background(), "P1", dto.UpdateProductRequest{
		TotalQuantity: qtyPtr(-2),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestProductUpdate_NoEncontrado(t *testing.T) {
	_, uc := newProductFixture(t)
	_, err := uc.Update(context.Background(), "NO-EXISTE", dto.UpdateProductRequest{
		Name: strPtr("Nuevo"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_PatchParcialConservaElResto(t *testing.T) {
	_, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", Description: "M4 x 20mm",
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, "P1", dto.UpdateProductRequest{Name: strPtr("Tornillo inox")})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo inox", out.Name)
	assert.Equal(t, "M4 x 20mm", out.Description, "los campos no incluidos en el patch no cambian")
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestProductDelete_ConMovimientosFalla(t *testing.T) {
	store, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		ProductID: "P1", Name: "Tornillo", TotalQuantity: 5, LocationID: strPtr("A"),
	})
	require.NoError(t, err)

	err = uc.Delete(ctx, "P1")
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un producto referenciado por el ledger no puede borrarse")

	p, err := store.Products().GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestProductDelete_SinMovimientosElimina(t *testing.T) {
	_, uc := newProductFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{ProductID: "P1", Name: "Tornillo"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "P1"))

	got, err := uc.GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductDelete_NoEncontrado(t *testing.T) {
	_, uc := newProductFixture(t)
	assert.ErrorIs(t, uc.Delete(context.Background(), "NO-EXISTE"), domain.ErrNotFound)
}
