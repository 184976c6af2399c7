// Package export construye reportes planos (CSV y XLSX) a partir de los
// listados de la API. Formateo puro: no consulta almacenamiento.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
)

// utf8BOM hace que Excel abra el CSV como UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ProductsCSV escribe el inventario en CSV con las columnas del panel.
func ProductsCSV(w io.Writer, products []dto.ProductResponse) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{
		"CODIGO", "NOMBRE", "AREA", "CANTIDAD", "CANTIDAD_MINIMA", "UNIDAD",
		"PRECIO_COMPRA", "UBICACION", "FECHA_ENTRADA", "ALERTA", "DIAS_EN_STOCK",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range products {
		price := ""
		if p.PurchasePrice != nil {
			price = p.PurchasePrice.StringFixed(2)
		}
		alert := "OK"
		if p.LowStock {
			alert = "STOCK BAJO"
		}
		row := []string{
			p.Code,
			p.Name,
			p.Area,
			fmt.Sprintf("%d", p.Quantity),
			fmt.Sprintf("%d", p.MinQuantity),
			p.Unit,
			price,
			p.Location,
			p.EntryDate.Format("2006-01-02"),
			alert,
			fmt.Sprintf("%d", daysInStock(p.EntryDate, time.Now())),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WithdrawalsCSV escribe el libro de salidas en CSV.
func WithdrawalsCSV(w io.Writer, withdrawals []dto.WithdrawalResponse) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{
		"FECHA", "CODIGO", "PRODUCTO", "CANTIDAD", "UNIDAD", "RESPONSABLE",
		"AREA_DESTINO", "OBSERVACIONES", "STOCK_ANTERIOR", "STOCK_RESTANTE",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range withdrawals {
		row := []string{
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.ProductCode,
			s.ProductName,
			fmt.Sprintf("%d", s.Quantity),
			s.Unit,
			s.Responsible,
			s.DestinationArea,
			s.Notes,
			fmt.Sprintf("%d", s.StockBefore),
			fmt.Sprintf("%d", s.StockAfter),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func daysInStock(entry, now time.Time) int {
	d := int(now.Sub(entry).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
