package entity

import "time"

// Supplier representa un proveedor asociado a productos del almacén.
// El nombre es único sin distinguir mayúsculas.
type Supplier struct {
	ID        int64
	Name      string
	TaxID     string // RFC
	Phone     string
	Email     string
	Address   string
	Contact   string // persona de contacto
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
