package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
)

// ProductsWorkbook construye un libro XLSX con el inventario completo.
// El caller es responsable de cerrar el archivo.
func ProductsWorkbook(products []dto.ProductResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"Código", "Nombre", "Área", "Cantidad", "Cantidad mínima", "Unidad",
		"Piezas por unidad", "Precio compra", "Ubicación", "Fecha entrada",
		"Alerta", "Días en stock",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}

	now := time.Now()
	for i, p := range products {
		var price interface{}
		if p.PurchasePrice != nil {
			price, _ = p.PurchasePrice.Float64()
		}
		alert := "OK"
		if p.LowStock {
			alert = "STOCK BAJO"
		}
		row := []interface{}{
			p.Code, p.Name, p.Area, p.Quantity, p.MinQuantity, p.Unit,
			p.PieceFactor, price, p.Location, p.EntryDate.Format("2006-01-02"),
			alert, daysInStock(p.EntryDate, now),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	return f, nil
}
