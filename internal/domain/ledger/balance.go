// Package ledger contiene la aritmética pura de saldos: todo saldo es
// entradas menos salidas sobre el conjunto de movimientos, sin estado.
package ledger

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// Key identifica un saldo por par (producto, ubicación).
type Key struct {
	ProductID  string
	LocationID string
}

// Contribution aporte de un movimiento al saldo de (productID, locationID):
// positivo si la ubicación es destino, negativo si es origen, cero si no
// participa. Un traslado dentro de la misma ubicación aporta cero.
func Contribution(m *entity.Movement, productID, locationID string) int64 {
	if m.ProductID != productID {
		return 0
	}
	var c int64
	if m.ToLocation != nil && *m.ToLocation == locationID {
		c += m.Qty
	}
	if m.FromLocation != nil && *m.FromLocation == locationID {
		c -= m.Qty
	}
	return c
}

// Net saldo neto de un producto en una ubicación sobre el conjunto dado.
// Sin movimientos que coincidan el resultado es 0, nunca un error.
func Net(movs []*entity.Movement, productID, locationID string) int64 {
	var net int64
	for _, m := range movs {
		net += Contribution(m, productID, locationID)
	}
	return net
}

// Aggregate calcula el saldo neto de cada par (producto, ubicación) que
// aparece como origen o destino de algún movimiento. Los pares cuyo neto es
// exactamente cero se omiten.
func Aggregate(movs []*entity.Movement) map[Key]int64 {
	nets := make(map[Key]int64)
	for _, m := range movs {
		if m.ToLocation != nil {
			nets[Key{ProductID: m.ProductID, LocationID: *m.ToLocation}] += m.Qty
		}
		if m.FromLocation != nil {
			nets[Key{ProductID: m.ProductID, LocationID: *m.FromLocation}] -= m.Qty
		}
	}
	for k, v := range nets {
		if v == 0 {
			delete(nets, k)
		}
	}
	return nets
}
