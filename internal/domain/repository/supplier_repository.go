package repository

import (
	"context"

	"github.com/almacen-dev/almacen-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	// GetByName busca por nombre sin distinguir mayúsculas (unicidad).
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// Delete marca el proveedor como inactivo (soft delete).
	Delete(ctx context.Context, id int64) error
}
