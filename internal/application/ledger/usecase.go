package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// MovementUseCase valida y escribe movimientos del ledger. Cada mutación
// corre en una transacción con el saldo del par (producto, origen) bloqueado
// entre la validación y el insert.
type MovementUseCase struct {
	txRunner  TxRunner
	movements repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movements repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movements: movements}
}

// Create valida el borrador en el orden del contrato (campos, cantidad,
// duplicado, referencias, saldo de origen) cortando en el primer fallo, y
// apendea el movimiento con timestamp fresco.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || in.Qty == nil {
		return nil, domain.ErrMissingField
	}
	if in.FromLocation == nil && in.ToLocation == nil {
		return nil, domain.ErrMissingField
	}
	qty := *in.Qty
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		locations repository.LocationRepository,
		movements repository.MovementRepository,
	) error {
		if in.FromLocation != nil {
			if err := movements.LockBalance(ctx, in.ProductID, *in.FromLocation); err != nil {
				return err
			}
		}
		if in.MovementID != "" {
			exists, err := movements.Exists(ctx, in.MovementID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicate
			}
		}
		if err := checkReferences(ctx, products, locations, in.ProductID, in.FromLocation, in.ToLocation); err != nil {
			return err
		}
		if in.FromLocation != nil {
			available, err := movements.Balance(ctx, in.ProductID, *in.FromLocation)
			if err != nil {
				return err
			}
			if available <= 0 || qty > available {
				return &domain.StockError{
					ProductID:  in.ProductID,
					LocationID: *in.FromLocation,
					Requested:  qty,
					Available:  available,
				}
			}
		}

		id := in.MovementID
		if id == "" {
			var err error
			if id, err = NewMovementID(ctx, movements); err != nil {
				return err
			}
		}
		m := &entity.Movement{
			ID:           id,
			Timestamp:    time.Now().UTC(),
			FromLocation: in.FromLocation,
			ToLocation:   in.ToLocation,
			ProductID:    in.ProductID,
			Qty:          qty,
		}
		if err := movements.Create(ctx, m); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// GetByID obtiene un movimiento por ID; (nil, nil) si no existe.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toMovementResponse(m), nil
}

// List lista movimientos con paginación.
func (uc *MovementUseCase) List(ctx context.Context, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movements.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica el patch y revalida los campos de referencia que cambian con
// las mismas reglas de la creación. Si cambian cantidad, origen o producto se
// recalcula la suficiencia de saldo excluyendo la fila editada. Todo update
// exitoso estampa timestamp fresco.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	if in.Qty != nil && *in.Qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		locations repository.LocationRepository,
		movements repository.MovementRepository,
	) error {
		current, err := movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		next := *current
		if in.ProductID != nil {
			next.ProductID = *in.ProductID
		}
		if in.Qty != nil {
			next.Qty = *in.Qty
		}
		if in.FromLocation.Set {
			next.FromLocation = in.FromLocation.Value
		}
		if in.ToLocation.Set {
			next.ToLocation = in.ToLocation.Value
		}
		if next.FromLocation == nil && next.ToLocation == nil {
			return domain.ErrMissingField
		}

		if next.ProductID != current.ProductID {
			if err := checkProduct(ctx, products, next.ProductID); err != nil {
				return err
			}
		}
		if changedLocation(current.FromLocation, next.FromLocation) {
			if err := checkLocation(ctx, locations, next.FromLocation); err != nil {
				return err
			}
		}
		if changedLocation(current.ToLocation, next.ToLocation) {
			if err := checkLocation(ctx, locations, next.ToLocation); err != nil {
				return err
			}
		}

		affectsBalance := next.Qty != current.Qty ||
			next.ProductID != current.ProductID ||
			changedLocation(current.FromLocation, next.FromLocation)
		if next.FromLocation != nil && affectsBalance {
			if err := movements.LockBalance(ctx, next.ProductID, *next.FromLocation); err != nil {
				return err
			}
			balance, err := movements.Balance(ctx, next.ProductID, *next.FromLocation)
			if err != nil {
				return err
			}
			// El saldo incluye la fila que se está editando; se descuenta su
			// aporte para validar contra el resto del ledger.
			available := balance - ledger.Contribution(current, next.ProductID, *next.FromLocation)
			if next.Qty > available {
				return &domain.StockError{
					ProductID:  next.ProductID,
					LocationID: *next.FromLocation,
					Requested:  next.Qty,
					Available:  available,
				}
			}
		}

		next.Timestamp = time.Now().UTC()
		if err := movements.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(updated), nil
}

// Delete elimina un movimiento. Los movimientos se borran sin precondición:
// son el ledger mismo, no referencias a él.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	return uc.movements.Delete(ctx, id)
}

// NewMovementID genera un ID con semilla temporal y sufijo aleatorio. La
// unicidad la garantiza el chequeo, no la construcción: ante colisión se
// reintenta con otro sufijo.
func NewMovementID(ctx context.Context, movements repository.MovementRepository) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		id := fmt.Sprintf("MV-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:6])
		exists, err := movements.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", domain.ErrDuplicate
}

func checkReferences(
	ctx context.Context,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	productID string,
	from, to *string,
) error {
	if err := checkProduct(ctx, products, productID); err != nil {
		return err
	}
	if err := checkLocation(ctx, locations, from); err != nil {
		return err
	}
	return checkLocation(ctx, locations, to)
}

func checkProduct(ctx context.Context, products repository.ProductRepository, id string) error {
	p, err := products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrUnknownProduct
	}
	return nil
}

func checkLocation(ctx context.Context, locations repository.LocationRepository, id *string) error {
	if id == nil {
		return nil
	}
	l, err := locations.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrUnknownLocation
	}
	return nil
}

func changedLocation(old, next *string) bool {
	if old == nil || next == nil {
		return old != next
	}
	return *old != *next
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		MovementID:   m.ID,
		Timestamp:    m.Timestamp,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		ProductID:    m.ProductID,
		Qty:          m.Qty,
	}
}
