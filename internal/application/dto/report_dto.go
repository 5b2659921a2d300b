package dto

// ReportRow saldo neto de un producto en una ubicación. Los nombres vienen
// en null cuando la fila referenciada ya no existe (el ledger sobrevive a
// sus entidades).
type ReportRow struct {
	ProductID    string  `json:"product_id"`
	ProductName  *string `json:"product_name"`
	LocationID   string  `json:"location_id"`
	LocationName *string `json:"location_name"`
	Qty          int64   `json:"qty"`
}
