package repository

import (
	"context"

	"github.com/almacen-dev/almacen-api/internal/domain/entity"
)

// ProductFilter criterios de listado. Search busca por subcadena en nombre o
// código (sin distinguir mayúsculas); Area es coincidencia exacta. Ambos se
// combinan con AND; vacíos devuelven todo.
type ProductFilter struct {
	Search string
	Area   string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones aceptan pool o tx para poder participar en la
// transacción de salidas.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetByCodeForUpdate bloquea la fila del producto (SELECT FOR UPDATE)
	// para serializar salidas concurrentes sobre el mismo producto.
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// Update escribe los campos descriptivos; nunca toca quantity, para que
	// una edición no pise el descuento de una salida concurrente.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity fija la cantidad absoluta (tx de salida o corrección
	// explícita).
	UpdateQuantity(ctx context.Context, code string, quantity int) error
	// AddQuantity suma delta a la cantidad actual. Devuelve false si la fila
	// no existe (producto eliminado definitivamente).
	AddQuantity(ctx context.Context, code string, delta int) (bool, error)
	// Delete marca el producto como inactivo (soft delete).
	Delete(ctx context.Context, code string) error
	// NextCode devuelve el siguiente código numérico libre (máximo + 1,
	// ignorando códigos no numéricos).
	NextCode(ctx context.Context) (int64, error)
	// CountBySupplier cuenta productos activos que referencian al proveedor.
	CountBySupplier(ctx context.Context, supplierID int64) (int, error)
}
