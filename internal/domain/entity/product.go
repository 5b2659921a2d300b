package entity

import "time"

// Product representa un producto del inventario. TotalQuantity es la cantidad
// nominal declarada por el caller; el stock real se deriva siempre del ledger
// de movimientos, nunca de este campo.
type Product struct {
	ID            string
	Name          string
	Description   string
	TotalQuantity int64
	LocationID    *string // ubicación actual declarada (opcional)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
