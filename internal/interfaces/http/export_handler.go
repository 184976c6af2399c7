package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/application/inventory"
	"github.com/almacen-dev/almacen-api/internal/application/usecase"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
	"github.com/almacen-dev/almacen-api/internal/infrastructure/export"
)

// ExportHandler descarga de reportes CSV/XLSX sobre los listados.
type ExportHandler struct {
	productUC    *usecase.ProductUseCase
	withdrawalUC *inventory.WithdrawalUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(productUC *usecase.ProductUseCase, withdrawalUC *inventory.WithdrawalUseCase) *ExportHandler {
	return &ExportHandler{productUC: productUC, withdrawalUC: withdrawalUC}
}

// ProductsCSV godoc
// @Summary      Exportar inventario a CSV
// @Tags         export
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/products.csv [get]
func (h *ExportHandler) ProductsCSV(c *fiber.Ctx) error {
	products, err := h.productUC.List(c.Context(), repository.ProductFilter{})
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := export.ProductsCSV(&buf, products); err != nil {
		return respondError(c, err)
	}
	setDownloadHeaders(c, "text/csv; charset=utf-8", fmt.Sprintf("inventario_%s.csv", time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

// WithdrawalsCSV godoc
// @Summary      Exportar libro de salidas a CSV
// @Tags         export
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/withdrawals.csv [get]
func (h *ExportHandler) WithdrawalsCSV(c *fiber.Ctx) error {
	withdrawals, err := h.withdrawalUC.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := export.WithdrawalsCSV(&buf, withdrawals); err != nil {
		return respondError(c, err)
	}
	setDownloadHeaders(c, "text/csv; charset=utf-8", fmt.Sprintf("salidas_%s.csv", time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

// ProductsXLSX godoc
// @Summary      Exportar inventario a XLSX
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {string}  string
// @Router       /api/export/products.xlsx [get]
func (h *ExportHandler) ProductsXLSX(c *fiber.Ctx) error {
	products, err := h.productUC.List(c.Context(), repository.ProductFilter{})
	if err != nil {
		return respondError(c, err)
	}
	f, err := export.ProductsWorkbook(products)
	if err != nil {
		return respondError(c, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("error interno del servidor"))
	}
	setDownloadHeaders(c,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

func setDownloadHeaders(c *fiber.Ctx, contentType, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
}
