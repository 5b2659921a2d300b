package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// fail traduce un error de dominio a la respuesta HTTP del contrato:
// 400 para rechazos de validación, 404 para recurso inexistente, 409 para
// la precondición de borrado y 500 para fallas de almacenamiento.
func fail(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "STORAGE_FAILURE"
	switch {
	case errors.Is(err, domain.ErrMissingField):
		status, code = fiber.StatusBadRequest, "MISSING_FIELD"
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusBadRequest, "DUPLICATE_ID"
	case errors.Is(err, domain.ErrUnknownProduct):
		status, code = fiber.StatusBadRequest, "UNKNOWN_PRODUCT"
	case errors.Is(err, domain.ErrUnknownLocation):
		status, code = fiber.StatusBadRequest, "UNKNOWN_LOCATION"
	case errors.Is(err, domain.ErrNoStock):
		status, code = fiber.StatusBadRequest, "NO_STOCK"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
