package usecase

import (
	"context"
	"time"

	appledger "github.com/jhoicas/stock-ledger-api/internal/application/ledger"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos más los movimientos sintéticos que lo
// acompañan: stock inicial al crear y traslado del saldo al reubicar. Cada
// mutación con efecto en el ledger corre en una sola transacción.
type ProductUseCase struct {
	txRunner  appledger.TxRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner appledger.TxRunner,
	products repository.ProductRepository,
	movements repository.MovementRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, products: products, movements: movements}
}

// Create persiste el producto y, si trae ubicación y cantidad positiva,
// sintetiza el movimiento de entrada INIT-<product_id> en la misma
// transacción. El ID determinístico asegura a lo sumo un INIT por producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.ProductID == "" || in.Name == "" {
		return nil, domain.ErrMissingField
	}
	if in.TotalQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:            in.ProductID,
		Name:          in.Name,
		Description:   in.Description,
		TotalQuantity: in.TotalQuantity,
		LocationID:    in.LocationID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		locations repository.LocationRepository,
		movements repository.MovementRepository,
	) error {
		existing, err := products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if in.LocationID != nil {
			loc, err := locations.GetByID(ctx, *in.LocationID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.ErrUnknownLocation
			}
		}
		if err := products.Create(ctx, product); err != nil {
			return err
		}
		if in.LocationID != nil && in.TotalQuantity > 0 {
			return movements.Create(ctx, &entity.Movement{
				ID:         entity.InitMovementID(product.ID),
				Timestamp:  now,
				ToLocation: in.LocationID,
				ProductID:  product.ID,
				Qty:        in.TotalQuantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica el patch campo a campo. Un cambio de ubicación entre dos
// valores no nulos sintetiza un traslado del saldo restante completo en la
// ubicación anterior (omitido si es <= 0). Un cambio de total_quantity
// reescribe cantidad y timestamp del movimiento INIT; el ledger tolera esta
// única excepción al append-only.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.TotalQuantity != nil && *in.TotalQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		locations repository.LocationRepository,
		movements repository.MovementRepository,
	) error {
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := time.Now().UTC()
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}

		if in.LocationID.Set {
			newLoc := in.LocationID.Value
			if newLoc != nil {
				loc, err := locations.GetByID(ctx, *newLoc)
				if err != nil {
					return err
				}
				if loc == nil {
					return domain.ErrUnknownLocation
				}
			}
			oldLoc := product.LocationID
			if oldLoc != nil && newLoc != nil && *oldLoc != *newLoc {
				if err := uc.relocate(ctx, movements, product.ID, *oldLoc, *newLoc, now); err != nil {
					return err
				}
			}
			product.LocationID = newLoc
		}

		if in.TotalQuantity != nil {
			product.TotalQuantity = *in.TotalQuantity
			if err := uc.rewriteInit(ctx, movements, product.ID, *in.TotalQuantity, now); err != nil {
				return err
			}
		}

		product.UpdatedAt = now
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Delete exige cero referencias en el ledger antes del borrado: huérfanos en
// product_movements corromperían todos los saldos derivados.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		locations repository.LocationRepository,
		movements repository.MovementRepository,
	) error {
		referenced, err := movements.ReferencesProduct(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrConflict
		}
		return products.Delete(ctx, id)
	})
}

// relocate traslada el saldo restante completo de la ubicación anterior a la
// nueva, manteniendo el ledger consistente con la ubicación declarada sin un
// traslado explícito del caller.
func (uc *ProductUseCase) relocate(
	ctx context.Context,
	movements repository.MovementRepository,
	productID, oldLoc, newLoc string,
	now time.Time,
) error {
	if err := movements.LockBalance(ctx, productID, oldLoc); err != nil {
		return err
	}
	remaining, err := movements.Balance(ctx, productID, oldLoc)
	if err != nil {
		return err
	}
	if remaining <= 0 {
		return nil
	}
	id, err := appledger.NewMovementID(ctx, movements)
	if err != nil {
		return err
	}
	from, to := oldLoc, newLoc
	return movements.Create(ctx, &entity.Movement{
		ID:           id,
		Timestamp:    now,
		FromLocation: &from,
		ToLocation:   &to,
		ProductID:    productID,
		Qty:          remaining,
	})
}

// rewriteInit retoca el movimiento sintético de stock inicial al nuevo
// total_quantity. Si el producto nunca tuvo INIT no hay nada que reescribir.
func (uc *ProductUseCase) rewriteInit(
	ctx context.Context,
	movements repository.MovementRepository,
	productID string,
	totalQuantity int64,
	now time.Time,
) error {
	init, err := movements.GetByID(ctx, entity.InitMovementID(productID))
	if err != nil {
		return err
	}
	if init == nil {
		return nil
	}
	if totalQuantity == 0 {
		// Qty cero no es un movimiento válido; el INIT se retira.
		return movements.Delete(ctx, init.ID)
	}
	init.Qty = totalQuantity
	init.Timestamp = now
	return movements.Update(ctx, init)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   p.Description,
		TotalQuantity: p.TotalQuantity,
		LocationID:    p.LocationID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
