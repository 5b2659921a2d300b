package dto

import "time"

// CreateMovementRequest body para POST /movements. movement_id es opcional;
// si viene vacío se genera uno. from_location nulo significa entrada al
// sistema; to_location nulo, salida.
type CreateMovementRequest struct {
	MovementID   string  `json:"movement_id,omitempty"`
	ProductID    string  `json:"product_id"`
	Qty          *int64  `json:"qty"`
	FromLocation *string `json:"from_location,omitempty"`
	ToLocation   *string `json:"to_location,omitempty"`
}

// UpdateMovementRequest patch de un movimiento. Las ubicaciones aceptan null
// explícito para limpiar el extremo correspondiente.
type UpdateMovementRequest struct {
	ProductID    *string        `json:"product_id"`
	Qty          *int64         `json:"qty"`
	FromLocation NullableString `json:"from_location"`
	ToLocation   NullableString `json:"to_location"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	MovementID   string    `json:"movement_id"`
	Timestamp    time.Time `json:"timestamp"`
	FromLocation *string   `json:"from_location"`
	ToLocation   *string   `json:"to_location"`
	ProductID    string    `json:"product_id"`
	Qty          int64     `json:"qty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
