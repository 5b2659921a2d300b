package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del ledger. Pasar pool o tx
// (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO product_movements (movement_id, timestamp, from_location, to_location, product_id, qty)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.Timestamp, movement.FromLocation, movement.ToLocation,
		movement.ProductID, movement.Qty,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT movement_id, timestamp, from_location, to_location, product_id, qty
		FROM product_movements WHERE movement_id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Timestamp, &m.FromLocation, &m.ToLocation, &m.ProductID, &m.Qty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Exists verifica si ya hay un movimiento con el ID dado.
func (r *MovementRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_movements WHERE movement_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists movement: %w", err)
	}
	return exists, nil
}

// List lista movimientos con paginación, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT movement_id, timestamp, from_location, to_location, product_id, qty
		FROM product_movements ORDER BY timestamp DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListAll devuelve el ledger completo, para el agregado de reporte.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	query := `
		SELECT movement_id, timestamp, from_location, to_location, product_id, qty
		FROM product_movements ORDER BY timestamp`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// Update actualiza un movimiento existente.
func (r *MovementRepo) Update(ctx context.Context, movement *entity.Movement) error {
	query := `
		UPDATE product_movements SET timestamp = $2, from_location = $3, to_location = $4, product_id = $5, qty = $6
		WHERE movement_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		movement.ID, movement.Timestamp, movement.FromLocation, movement.ToLocation,
		movement.ProductID, movement.Qty,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_movements WHERE movement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Balance saldo neto de un producto en una ubicación: suma de entradas menos
// suma de salidas. COALESCE evita propagar NULL cuando no hay filas.
func (r *MovementRepo) Balance(ctx context.Context, productID, locationID string) (int64, error) {
	const query = `
	SELECT
	    COALESCE(SUM(qty) FILTER (WHERE to_location   = $2), 0)
	  - COALESCE(SUM(qty) FILTER (WHERE from_location = $2), 0)
	FROM product_movements
	WHERE product_id = $1`
	var net int64
	if err := r.q.QueryRow(ctx, query, productID, locationID).Scan(&net); err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}
	return net, nil
}

// LockBalance toma un advisory lock de transacción sobre el par
// (producto, ubicación). Cierra la ventana check-then-act entre la lectura del
// saldo y el insert del movimiento; se libera solo en Commit/Rollback.
func (r *MovementRepo) LockBalance(ctx context.Context, productID, locationID string) error {
	_, err := r.q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		productID+"/"+locationID,
	)
	if err != nil {
		return fmt.Errorf("lock balance: %w", err)
	}
	return nil
}

// ReferencesProduct indica si algún movimiento referencia al producto.
func (r *MovementRepo) ReferencesProduct(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_movements WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("references product: %w", err)
	}
	return exists, nil
}

// ReferencesLocation indica si algún movimiento referencia a la ubicación
// como origen o destino.
func (r *MovementRepo) ReferencesLocation(ctx context.Context, locationID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_movements WHERE from_location = $1 OR to_location = $1)`,
		locationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("references location: %w", err)
	}
	return exists, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.FromLocation, &m.ToLocation, &m.ProductID, &m.Qty); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
