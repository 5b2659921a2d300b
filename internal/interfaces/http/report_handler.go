package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
)

// ReportRenderer genera la representación imprimible del reporte de saldos.
type ReportRenderer interface {
	RenderBalanceReport(rows []dto.ReportRow) ([]byte, error)
}

// ReportHandler expone el reporte de saldos por (producto, ubicación).
type ReportHandler struct {
	uc       *ledger.ReportUseCase
	renderer ReportRenderer
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *ledger.ReportUseCase, renderer ReportRenderer) *ReportHandler {
	return &ReportHandler{uc: uc, renderer: renderer}
}

// Balances godoc
// @Summary      Reporte de saldos netos por producto y ubicación
// @Tags         report
// @Produce      json
// @Success      200  {array}  dto.ReportRow
// @Router       /report [get]
func (h *ReportHandler) Balances(c *fiber.Ctx) error {
	rows, err := h.uc.Balances(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// BalancesPDF devuelve el mismo reporte como documento PDF.
func (h *ReportHandler) BalancesPDF(c *fiber.Ctx) error {
	rows, err := h.uc.Balances(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	doc, err := h.renderer.RenderBalanceReport(rows)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="balance-report.pdf"`)
	return c.Send(doc)
}
