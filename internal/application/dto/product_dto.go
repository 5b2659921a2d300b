package dto

import "time"

// CreateProductRequest entrada para crear un producto. El ID lo asigna el
// caller.
type CreateProductRequest struct {
	ProductID     string  `json:"product_id" validate:"required,min=1,max=100"`
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Description   string  `json:"description"`
	TotalQuantity int64   `json:"total_quantity"`
	LocationID    *string `json:"location_id"`
}

// UpdateProductRequest entrada para actualizar un producto. Solo los campos
// presentes mutan; location_id acepta null explícito para desasignar.
type UpdateProductRequest struct {
	Name          *string        `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string        `json:"description"`
	TotalQuantity *int64         `json:"total_quantity"`
	LocationID    NullableString `json:"location_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ProductID     string    `json:"product_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	TotalQuantity int64     `json:"total_quantity"`
	LocationID    *string   `json:"location_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
