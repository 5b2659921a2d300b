package entity

import "time"

// Location representa un punto físico donde se almacena stock. No tiene
// campos de cantidad: el saldo por ubicación se deriva de los movimientos.
type Location struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
