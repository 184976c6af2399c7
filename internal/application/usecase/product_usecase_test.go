package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/application/usecase"
	"github.com/almacen-dev/almacen-api/internal/domain"
	"github.com/almacen-dev/almacen-api/internal/domain/entity"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

// fakeProductRepo doble en memoria para productos. Solo activos son visibles
// por GetByCode, como en el repositorio real.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	// La clave primaria choca también contra filas inactivas.
	if _, ok := r.products[p.Code]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.products[p.Code] = &cp
	return nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	p, ok := r.products[code]
	if !ok || !p.Active {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		if p.Active && p.LowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	// Como el repositorio real: los campos descriptivos se escriben, la
	// cantidad viva no se toca.
	cp := *p
	if existing, ok := r.products[p.Code]; ok {
		cp.Quantity = existing.Quantity
	}
	r.products[p.Code] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(_ context.Context, code string, quantity int) error {
	if p, ok := r.products[code]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) AddQuantity(_ context.Context, code string, delta int) (bool, error) {
	p, ok := r.products[code]
	if !ok {
		return false, nil
	}
	p.Quantity += delta
	return true, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, code string) error {
	if p, ok := r.products[code]; ok {
		p.Active = false
	}
	return nil
}

// NextCode considera también filas inactivas: un código de producto dado de
// baja no debe reemitirse.
func (r *fakeProductRepo) NextCode(_ context.Context) (int64, error) {
	var max int64
	for code := range r.products {
		var n int64
		for _, c := range code {
			if c < '0' || c > '9' {
				n = 0
				break
			}
			n = n*10 + int64(c-'0')
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

func (r *fakeProductRepo) CountBySupplier(_ context.Context, supplierID int64) (int, error) {
	count := 0
	for _, p := range r.products {
		if p.Active && p.SupplierID != nil && *p.SupplierID == supplierID {
			count++
		}
	}
	return count, nil
}

func newProductUC() (*usecase.ProductUseCase, *fakeProductRepo, *fakeSupplierRepo) {
	products := newFakeProductRepo()
	suppliers := newFakeSupplierRepo()
	return usecase.NewProductUseCase(products, suppliers), products, suppliers
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_AplicaDefaults(t *testing.T) {
	uc, _, _ := newProductUC()

	resp, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code:     "101",
		Name:     "Guantes de nitrilo",
		Area:     entity.AreaEnfermeria,
		Quantity: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.MinQuantity, "mínimo por defecto")
	assert.Equal(t, "PZ", resp.Unit, "unidad por defecto")
	assert.Equal(t, 1, resp.PieceFactor, "factor por defecto")
	assert.False(t, resp.EntryDate.IsZero(), "fecha de entrada la asigna el servidor")
	assert.False(t, resp.LowStock)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	uc, _, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria,
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Otro", Area: entity.AreaTaller,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CodigoDeProductoDadoDeBaja(t *testing.T) {
	uc, repo, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(context.Background(), "101"))

	// La baja es lógica: la clave primaria sigue ocupada y el mensaje debe
	// decirlo, porque el panel no puede mostrar el producto que choca.
	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Otro", Area: entity.AreaTaller,
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "producto eliminado")
	assert.False(t, repo.products["101"].Active, "la fila original no cambia")
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	uc, _, _ := newProductUC()

	missing := int64(42)
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria, SupplierID: &missing,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_ConProveedorValido(t *testing.T) {
	uc, _, suppliers := newProductUC()
	require.NoError(t, suppliers.Create(context.Background(), &entity.Supplier{Name: "Ferretería Central", Active: true}))

	supplierID := int64(1)
	resp, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Tornillos", Area: entity.AreaTaller, SupplierID: &supplierID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SupplierID)
	assert.Equal(t, supplierID, *resp.SupplierID)
}

func TestProductUpdate_CamposParciales(t *testing.T) {
	uc, repo, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria, Quantity: 10,
	})
	require.NoError(t, err)

	newName := "Guantes de látex"
	newQty := 25
	resp, err := uc.Update(context.Background(), "101", dto.UpdateProductRequest{
		Name:     &newName,
		Quantity: &newQty,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "Guantes de látex", resp.Name)
	assert.Equal(t, 25, resp.Quantity)
	assert.Equal(t, entity.AreaEnfermeria, resp.Area, "los campos ausentes no cambian")
	assert.Equal(t, 25, repo.products["101"].Quantity)
}

// decrementAfterRead descuenta unidades justo después de cada lectura,
// simulando una salida que se confirma entre la lectura de Update y su
// escritura.
type decrementAfterRead struct {
	*fakeProductRepo
	delta int
}

func (r *decrementAfterRead) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := r.fakeProductRepo.GetByCode(ctx, code)
	if p != nil {
		r.products[code].Quantity -= r.delta
	}
	return p, err
}

func TestProductUpdate_SinCantidadNoPisaDescuentoConcurrente(t *testing.T) {
	base := newFakeProductRepo()
	repo := &decrementAfterRead{fakeProductRepo: base, delta: 3}
	uc := usecase.NewProductUseCase(repo, newFakeSupplierRepo())

	base.products["101"] = &entity.Product{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria, Quantity: 10, Active: true,
	}

	newName := "Guantes de látex"
	_, err := uc.Update(context.Background(), "101", dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Guantes de látex", base.products["101"].Name)
	assert.Equal(t, 7, base.products["101"].Quantity,
		"un PUT sin campo quantity no debe deshacer el descuento de una salida concurrente")
}

func TestProductUpdate_CantidadExplicitaSeEscribe(t *testing.T) {
	uc, repo, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria, Quantity: 10,
	})
	require.NoError(t, err)

	newQty := 25
	resp, err := uc.Update(context.Background(), "101", dto.UpdateProductRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Quantity)
	assert.Equal(t, 25, repo.products["101"].Quantity, "la corrección explícita sí fija la cantidad")
}

func TestProductUpdate_CantidadNegativaRechazada(t *testing.T) {
	uc, repo, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria, Quantity: 10,
	})
	require.NoError(t, err)

	negative := -1
	_, err = uc.Update(context.Background(), "101", dto.UpdateProductRequest{Quantity: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, repo.products["101"].Quantity)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _, _ := newProductUC()

	name := "Cualquiera"
	resp, err := uc.Update(context.Background(), "999", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestProductDelete_EsBajaLogica(t *testing.T) {
	uc, repo, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "101", Name: "Guantes", Area: entity.AreaEnfermeria,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "101"))
	assert.False(t, repo.products["101"].Active, "la fila se conserva inactiva")

	got, err := uc.GetByCode(context.Background(), "101")
	require.NoError(t, err)
	assert.Nil(t, got, "un producto desactivado no es visible")

	err = uc.Delete(context.Background(), "101")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductNextCode_IgnoraNoNumericos(t *testing.T) {
	uc, repo, _ := newProductUC()
	repo.products["105"] = &entity.Product{Code: "105", Active: true}
	repo.products["ABC-9"] = &entity.Product{Code: "ABC-9", Active: true}

	next, err := uc.NextCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(106), next)
}

func TestProductNextCode_CuentaCodigosDadosDeBaja(t *testing.T) {
	uc, repo, _ := newProductUC()
	repo.products["105"] = &entity.Product{Code: "105", Active: true}
	repo.products["300"] = &entity.Product{Code: "300", Active: false}

	next, err := uc.NextCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(301), next, "un código dado de baja no debe reemitirse")
}

func TestProductLowStock_UmbralInclusivo(t *testing.T) {
	uc, repo, _ := newProductUC()
	repo.products["1"] = &entity.Product{Code: "1", Quantity: 2, MinQuantity: 2, Active: true}
	repo.products["2"] = &entity.Product{Code: "2", Quantity: 3, MinQuantity: 2, Active: true}

	list, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].Code, "cantidad igual al mínimo ya es stock bajo")
	assert.True(t, list[0].LowStock)
}
