package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/application/inventory"
	"github.com/almacen-dev/almacen-api/internal/domain"
	"github.com/almacen-dev/almacen-api/internal/domain/entity"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
	"github.com/almacen-dev/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: almacén en memoria con semántica transaccional.
//
// memStore guarda productos y salidas en mapas. memTxRunner serializa las
// transacciones con un mutex (equivalente en memoria al bloqueo de fila de
// SELECT FOR UPDATE) y restaura una instantánea del estado si la función
// devuelve error, imitando el rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	withdrawals map[int64]*entity.Withdrawal
	nextID      int64
}

func newMemStore() *memStore {
	return &memStore{
		products:    make(map[string]*entity.Product),
		withdrawals: make(map[int64]*entity.Withdrawal),
	}
}

func (s *memStore) snapshot() (map[string]*entity.Product, map[int64]*entity.Withdrawal) {
	products := make(map[string]*entity.Product, len(s.products))
	for k, v := range s.products {
		cp := *v
		products[k] = &cp
	}
	withdrawals := make(map[int64]*entity.Withdrawal, len(s.withdrawals))
	for k, v := range s.withdrawals {
		cp := *v
		withdrawals[k] = &cp
	}
	return products, withdrawals
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.Code] = &cp
	return nil
}

func (r *memProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	p, ok := r.s.products[code]
	if !ok || !p.Active {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *memProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	if existing, ok := r.s.products[p.Code]; ok {
		cp.Quantity = existing.Quantity
	}
	r.s.products[p.Code] = &cp
	return nil
}

func (r *memProductRepo) UpdateQuantity(_ context.Context, code string, quantity int) error {
	p, ok := r.s.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) AddQuantity(_ context.Context, code string, delta int) (bool, error) {
	p, ok := r.s.products[code]
	if !ok {
		return false, nil
	}
	p.Quantity += delta
	return true, nil
}

func (r *memProductRepo) Delete(_ context.Context, code string) error {
	if p, ok := r.s.products[code]; ok {
		p.Active = false
	}
	return nil
}

func (r *memProductRepo) NextCode(_ context.Context) (int64, error) { return 0, nil }

func (r *memProductRepo) CountBySupplier(_ context.Context, _ int64) (int, error) { return 0, nil }

type memWithdrawalRepo struct{ s *memStore }

func (r *memWithdrawalRepo) Create(_ context.Context, w *entity.Withdrawal) error {
	r.s.nextID++
	w.ID = r.s.nextID
	cp := *w
	r.s.withdrawals[w.ID] = &cp
	return nil
}

func (r *memWithdrawalRepo) GetByID(_ context.Context, id int64) (*entity.Withdrawal, error) {
	w, ok := r.s.withdrawals[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWithdrawalRepo) List(_ context.Context) ([]*entity.Withdrawal, error) {
	out := make([]*entity.Withdrawal, 0, len(r.s.withdrawals))
	for _, w := range r.s.withdrawals {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memWithdrawalRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.withdrawals, id)
	return nil
}

type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	withdrawalRepo repository.WithdrawalRepository,
) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()

	products, withdrawals := tr.s.snapshot()
	nextID := tr.s.nextID
	err := fn(&memProductRepo{s: tr.s}, &memWithdrawalRepo{s: tr.s})
	if err != nil {
		tr.s.products = products
		tr.s.withdrawals = withdrawals
		tr.s.nextID = nextID
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase(t *testing.T, store *memStore) *inventory.WithdrawalUseCase {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return inventory.NewWithdrawalUseCase(&memTxRunner{s: store}, &memWithdrawalRepo{s: store}, log)
}

func seedProduct(store *memStore, code string, quantity int) {
	store.products[code] = &entity.Product{
		Code:     code,
		Name:     "Guantes de nitrilo",
		Area:     entity.AreaEnfermeria,
		Quantity: quantity,
		Unit:     "CAJA",
		Active:   true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_DescuentaStockYGuardaInstantaneas(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	uc := newUseCase(t, store)

	resp, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode:     "101",
		Quantity:        3,
		Responsible:     "María Pérez",
		DestinationArea: "Quirófano",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 10, resp.StockBefore)
	assert.Equal(t, 7, resp.StockAfter)
	assert.Equal(t, "Guantes de nitrilo", resp.ProductName)
	assert.Equal(t, "CAJA", resp.Unit)
	assert.Equal(t, 7, store.products["101"].Quantity, "la cantidad del producto debe quedar descontada")
	assert.Len(t, store.withdrawals, 1)
}

func TestRegister_StockInsuficienteNoMutaNada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 5)
	uc := newUseCase(t, store)

	_, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "101",
		Quantity:    6,
		Responsible: "María Pérez",
	})

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "101", insufficientErr.ProductCode)
	assert.Equal(t, 6, insufficientErr.Requested)
	assert.Equal(t, 5, insufficientErr.Available)

	assert.Equal(t, 5, store.products["101"].Quantity, "un rechazo no debe tocar el stock")
	assert.Empty(t, store.withdrawals, "un rechazo no debe escribir en el libro de salidas")
}

func TestRegister_RetiroExactoDejaStockEnCero(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 4)
	uc := newUseCase(t, store)

	resp, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "101",
		Quantity:    4,
		Responsible: "María Pérez",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockAfter)
	assert.Equal(t, 0, store.products["101"].Quantity)
}

func TestRegister_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(t, store)

	_, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "999",
		Quantity:    1,
		Responsible: "María Pérez",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_ProductoDesactivadoNoAdmiteSalidas(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	store.products["101"].Active = false
	uc := newUseCase(t, store)

	_, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "101",
		Quantity:    1,
		Responsible: "María Pérez",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	uc := newUseCase(t, store)

	cases := []struct {
		name string
		in   dto.RegisterWithdrawalRequest
	}{
		{"código vacío", dto.RegisterWithdrawalRequest{Quantity: 1, Responsible: "Ana"}},
		{"responsable vacío", dto.RegisterWithdrawalRequest{ProductCode: "101", Quantity: 1}},
		{"responsable solo espacios", dto.RegisterWithdrawalRequest{ProductCode: "101", Quantity: 1, Responsible: "   "}},
		{"cantidad cero", dto.RegisterWithdrawalRequest{ProductCode: "101", Quantity: 0, Responsible: "Ana"}},
		{"cantidad negativa", dto.RegisterWithdrawalRequest{ProductCode: "101", Quantity: -2, Responsible: "Ana"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 10, store.products["101"].Quantity, "las entradas inválidas no deben tocar el stock")
	assert.Empty(t, store.withdrawals)
}

// Dos salidas de 6 unidades contra un stock de 10 deben resolverse de forma
// que exactamente una gane: el bloqueo de fila obliga a la segunda a decidir
// sobre la cantidad ya descontada.
func TestRegister_ConcurrentesNoSobregiran(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	uc := newUseCase(t, store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
				ProductCode: "101",
				Quantity:    6,
				Responsible: "Ana",
			})
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		var insufficientErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)
		rejected++
	}
	assert.Equal(t, 1, ok, "exactamente una salida debe registrarse")
	assert.Equal(t, 1, rejected, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, 4, store.products["101"].Quantity)
	assert.Len(t, store.withdrawals, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reverse
// ──────────────────────────────────────────────────────────────────────────────

func TestReverse_RestauraSobreCantidadViva(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	uc := newUseCase(t, store)

	resp, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "101",
		Quantity:    3,
		Responsible: "Ana",
	})
	require.NoError(t, err)

	// Edición manual posterior: la reversión debe sumar sobre este valor,
	// no volver a la instantánea stock_before.
	store.products["101"].Quantity = 20

	require.NoError(t, uc.Reverse(context.Background(), resp.ID))
	assert.Equal(t, 23, store.products["101"].Quantity)
	assert.Empty(t, store.withdrawals, "la salida revertida debe desaparecer del libro")
}

func TestReverse_SalidaInexistente(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(t, store)

	err := uc.Reverse(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverse_ProductoDesactivadoRecuperaStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	uc := newUseCase(t, store)

	resp, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "101",
		Quantity:    4,
		Responsible: "Ana",
	})
	require.NoError(t, err)

	// Baja lógica: la fila sigue existiendo, así que el stock se restaura
	// aunque el producto ya no sea visible.
	store.products["101"].Active = false

	require.NoError(t, uc.Reverse(context.Background(), resp.ID))
	assert.Equal(t, 10, store.products["101"].Quantity)
}

func TestReverse_ProductoBorradoEsHuerfanaPeroEliminaLaSalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	uc := newUseCase(t, store)

	resp, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "101",
		Quantity:    4,
		Responsible: "Ana",
	})
	require.NoError(t, err)

	delete(store.products, "101")

	require.NoError(t, uc.Reverse(context.Background(), resp.ID))
	assert.Empty(t, store.withdrawals, "la salida huérfana debe eliminarse igualmente")
}

func TestReverse_DobleReversionFalla(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "101", 10)
	uc := newUseCase(t, store)

	resp, err := uc.Register(context.Background(), dto.RegisterWithdrawalRequest{
		ProductCode: "101",
		Quantity:    2,
		Responsible: "Ana",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Reverse(context.Background(), resp.ID))
	err = uc.Reverse(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "revertir dos veces no debe duplicar stock")
	assert.Equal(t, 10, store.products["101"].Quantity)
}
