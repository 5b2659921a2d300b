package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que validación y escritura del
// ledger sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		locations repository.LocationRepository,
		movements repository.MovementRepository,
	) error) error
}
