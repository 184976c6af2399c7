package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Áreas conocidas del almacén. El campo es texto libre; estas constantes
// cubren las zonas que usa el panel.
const (
	AreaOficina    = "OFICINA"
	AreaLimpieza   = "LIMPIEZA"
	AreaTaller     = "TALLER"
	AreaEnfermeria = "ENFERMERIA"
)

// Product representa un artículo del almacén identificado por un código único
// asignado por el usuario. La cantidad nunca es negativa; solo el motor de
// salidas la muta junto con el libro de salidas.
type Product struct {
	Code          string
	Name          string
	Area          string
	Quantity      int
	MinQuantity   int // umbral de stock bajo (default 2)
	Unit          string
	PieceFactor   int              // piezas por unidad cuando Unit es caja/paquete (>= 1)
	PurchasePrice *decimal.Decimal // nil si no se registró precio
	Location      string
	EntryDate     time.Time
	SupplierID    *int64 // nil si no tiene proveedor asociado
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}
