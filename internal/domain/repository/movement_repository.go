package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el ledger de
// movimientos.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Movement, error)
	// ListAll devuelve el ledger completo, para el agregado de reporte.
	ListAll(ctx context.Context) ([]*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id string) error

	// Balance saldo neto (entradas menos salidas) de un producto en una
	// ubicación; 0 si no hay movimientos.
	Balance(ctx context.Context, productID, locationID string) (int64, error)

	// LockBalance serializa dentro de la transacción actual a los escritores
	// que validan saldo sobre el mismo par (producto, ubicación). Debe
	// tomarse antes de leer el saldo.
	LockBalance(ctx context.Context, productID, locationID string) error

	// ReferencesProduct / ReferencesLocation indican si algún movimiento
	// referencia la entidad; sostienen la precondición de borrado.
	ReferencesProduct(ctx context.Context, productID string) (bool, error)
	ReferencesLocation(ctx context.Context, locationID string) (bool, error)
}
