package entity

import "time"

// Movement es una entrada del ledger de stock. FromLocation nulo significa
// entrada al sistema; ToLocation nulo, salida. Con ambos presentes es un
// traslado entre ubicaciones. Qty siempre es positiva: el signo lo da el
// lado (origen/destino) en el que aparece la ubicación.
type Movement struct {
	ID           string
	Timestamp    time.Time
	FromLocation *string
	ToLocation   *string
	ProductID    string
	Qty          int64
}

// IsTransfer indica si el movimiento tiene origen y destino.
func (m *Movement) IsTransfer() bool {
	return m.FromLocation != nil && m.ToLocation != nil
}

// InitMovementID identificador determinístico del movimiento sintético de
// stock inicial de un producto; garantiza a lo sumo un registro por producto.
func InitMovementID(productID string) string {
	return "INIT-" + productID
}
