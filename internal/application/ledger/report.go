package ledger

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ReportUseCase agrega saldos por (producto, ubicación) escaneando el ledger
// completo. Corre fuera de toda transacción de escritura.
type ReportUseCase struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	movements repository.MovementRepository
}

// NewReportUseCase construye el agregador de reporte.
func NewReportUseCase(
	products repository.ProductRepository,
	locations repository.LocationRepository,
	movements repository.MovementRepository,
) *ReportUseCase {
	return &ReportUseCase{products: products, locations: locations, movements: movements}
}

// Balances devuelve una fila por cada par (producto, ubicación) con neto
// distinto de cero, ordenadas por producto y ubicación. Los nombres de filas
// ya borradas se resuelven a null en vez de fallar.
func (uc *ReportUseCase) Balances(ctx context.Context) ([]dto.ReportRow, error) {
	movs, err := uc.movements.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	nets := ledger.Aggregate(movs)

	productNames := make(map[string]*string)
	locationNames := make(map[string]*string)
	for key := range nets {
		if _, seen := productNames[key.ProductID]; !seen {
			p, err := uc.products.GetByID(ctx, key.ProductID)
			if err != nil {
				return nil, err
			}
			if p != nil {
				name := p.Name
				productNames[key.ProductID] = &name
			} else {
				productNames[key.ProductID] = nil
			}
		}
		if _, seen := locationNames[key.LocationID]; !seen {
			l, err := uc.locations.GetByID(ctx, key.LocationID)
			if err != nil {
				return nil, err
			}
			if l != nil {
				name := l.Name
				locationNames[key.LocationID] = &name
			} else {
				locationNames[key.LocationID] = nil
			}
		}
	}

	rows := make([]dto.ReportRow, 0, len(nets))
	for key, qty := range nets {
		rows = append(rows, dto.ReportRow{
			ProductID:    key.ProductID,
			ProductName:  productNames[key.ProductID],
			LocationID:   key.LocationID,
			LocationName: locationNames[key.LocationID],
			Qty:          qty,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		return rows[i].LocationID < rows[j].LocationID
	})
	return rows, nil
}
