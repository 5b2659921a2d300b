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

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	txRunner  appledger.TxRunner
	locations repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(txRunner appledger.TxRunner, locations repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner, locations: locations}
}

// Create crea una nueva ubicación.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.LocationID == "" || in.Name == "" {
		return nil, domain.ErrMissingField
	}
	existing, err := uc.locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	location := &entity.Location{
		ID:        in.LocationID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID; (nil, nil) si no existe.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.locations.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza una ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Address != nil {
		location.Address = *in.Address
	}
	location.UpdatedAt = time.Now().UTC()
	if err := uc.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Delete exige que ningún movimiento referencie la ubicación como origen o
// destino; de otro modo quedarían claves huérfanas en el ledger.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		locations repository.LocationRepository,
		movements repository.MovementRepository,
	) error {
		referenced, err := movements.ReferencesLocation(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrConflict
		}
		return locations.Delete(ctx, id)
	})
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		LocationID: l.ID,
		Name:       l.Name,
		Address:    l.Address,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
