package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/domain"
	"github.com/almacen-dev/almacen-api/internal/domain/entity"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad solo se muta
// aquí por ediciones explícitas; las salidas la mutan vía el motor
// transaccional.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create crea un nuevo producto con fecha de entrada el día actual.
// Defaults: min_quantity 2, unit PZ, piece_factor 1.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(ctx, *in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrInvalidInput
		}
	}
	minQty := 2
	if in.MinQuantity != nil {
		minQty = *in.MinQuantity
	}
	unit := in.Unit
	if unit == "" {
		unit = "PZ"
	}
	factor := 1
	if in.PieceFactor != nil {
		factor = *in.PieceFactor
	}
	now := time.Now()
	product := &entity.Product{
		Code:          in.Code,
		Name:          in.Name,
		Area:          in.Area,
		Quantity:      in.Quantity,
		MinQuantity:   minQty,
		Unit:          unit,
		PieceFactor:   factor,
		PurchasePrice: in.PurchasePrice,
		Location:      in.Location,
		EntryDate:     now,
		SupplierID:    in.SupplierID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		// GetByCode solo ve activos: si aun así la clave primaria choca, el
		// código pertenece a un producto dado de baja.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("el código %s pertenece a un producto eliminado: %w", in.Code, domain.ErrDuplicate)
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos activos filtrados por búsqueda y/o área.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListLowStock lista productos con cantidad <= mínimo, ordenados por holgura
// ascendente (los más urgentes primero).
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Update actualiza los campos presentes. Devuelve nil si el producto no
// existe. La cantidad solo se escribe cuando la petición la trae, vía
// UpdateQuantity; así una edición sin quantity no revierte el descuento de
// una salida confirmada entre la lectura y la escritura.
func (uc *ProductUseCase) Update(ctx context.Context, code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Area != nil {
		product.Area = *in.Area
	}
	if in.MinQuantity != nil {
		product.MinQuantity = *in.MinQuantity
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.PieceFactor != nil {
		if *in.PieceFactor < 1 {
			return nil, domain.ErrInvalidInput
		}
		product.PieceFactor = *in.PieceFactor
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = in.PurchasePrice
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(ctx, *in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrInvalidInput
		}
		product.SupplierID = in.SupplierID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if in.Quantity != nil {
		if err := uc.repo.UpdateQuantity(ctx, code, *in.Quantity); err != nil {
			return nil, err
		}
		product.Quantity = *in.Quantity
	}
	return toProductResponse(product), nil
}

// Delete marca el producto como inactivo. ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, code string) error {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, code)
}

// NextCode devuelve el siguiente código numérico libre.
func (uc *ProductUseCase) NextCode(ctx context.Context) (int64, error) {
	return uc.repo.NextCode(ctx)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		Code:          p.Code,
		Name:          p.Name,
		Area:          p.Area,
		Quantity:      p.Quantity,
		MinQuantity:   p.MinQuantity,
		Unit:          p.Unit,
		PieceFactor:   p.PieceFactor,
		PurchasePrice: p.PurchasePrice,
		Location:      p.Location,
		EntryDate:     p.EntryDate,
		SupplierID:    p.SupplierID,
		LowStock:      p.LowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}
