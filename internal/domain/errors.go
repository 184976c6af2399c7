package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// InsufficientStockError indica que una salida pide más unidades de las
// disponibles. Expone la cantidad disponible para que la API la devuelva al
// cliente.
type InsufficientStockError struct {
	ProductCode string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
		e.ProductCode, e.Requested, e.Available)
}

// SupplierReferencedError bloquea la eliminación de un proveedor mientras
// existan productos activos que lo referencien.
type SupplierReferencedError struct {
	SupplierID   int64
	ProductCount int
}

func (e *SupplierReferencedError) Error() string {
	return fmt.Sprintf("el proveedor %d está referenciado por %d producto(s) activo(s)",
		e.SupplierID, e.ProductCount)
}
