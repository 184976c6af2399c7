package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La fecha de entrada la
// asigna el servidor (fecha actual).
type CreateProductRequest struct {
	Code          string           `json:"code" validate:"required,max=50"`
	Name          string           `json:"name" validate:"required,max=200"`
	Area          string           `json:"area" validate:"required,max=100"`
	Quantity      int              `json:"quantity" validate:"min=0"`
	MinQuantity   *int             `json:"min_quantity" validate:"omitempty,min=0"`
	Unit          string           `json:"unit"`
	PieceFactor   *int             `json:"piece_factor" validate:"omitempty,min=1"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Location      string           `json:"location"`
	SupplierID    *int64           `json:"supplier_id"`
}

// UpdateProductRequest entrada para actualizar un producto; solo los campos
// presentes se modifican. La cantidad puede corregirse aquí, pero nunca por
// debajo de cero.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Area          *string          `json:"area" validate:"omitempty,min=1,max=100"`
	Quantity      *int             `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity   *int             `json:"min_quantity" validate:"omitempty,min=0"`
	Unit          *string          `json:"unit"`
	PieceFactor   *int             `json:"piece_factor" validate:"omitempty,min=1"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Location      *string          `json:"location"`
	SupplierID    *int64           `json:"supplier_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Area          string           `json:"area"`
	Quantity      int              `json:"quantity"`
	MinQuantity   int              `json:"min_quantity"`
	Unit          string           `json:"unit"`
	PieceFactor   int              `json:"piece_factor"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	Location      string           `json:"location"`
	EntryDate     time.Time        `json:"entry_date"`
	SupplierID    *int64           `json:"supplier_id,omitempty"`
	LowStock      bool             `json:"low_stock"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NextCodeResponse siguiente código numérico libre.
type NextCodeResponse struct {
	NextCode int64 `json:"next_code"`
}
