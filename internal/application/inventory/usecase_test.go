package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/application/inventory"
	"github.com/ferreinv/inventario-api/internal/domain"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del motor de inventario. El fakeTxRunner reproduce la
// semántica Commit/Rollback del TxRunner real: toma un snapshot del estado,
// ejecuta el callback y, si este devuelve error, restaura el snapshot. Así
// los tests de atomicidad verifican que un fallo a mitad de transacción no
// deja estado parcial.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*entity.Product)}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for id, p := range s.products {
		clone := *p
		cp.products[id] = &clone
	}
	cp.movements = make([]*entity.StockMovement, len(s.movements))
	copy(cp.movements, s.movements)
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.movements = snap.movements
}

type fakeProductRepo struct {
	store *fakeStore
	// inyección de fallo para probar rollback
	failUpdateStock bool
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	clone := *p
	r.store.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetWithCategory(id string) (*repository.ProductWithCategory, error) {
	p, err := r.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	return &repository.ProductWithCategory{Product: *p}, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	clone := *p
	r.store.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int) error {
	if r.failUpdateStock {
		return errors.New("fallo simulado de escritura")
	}
	p, ok := r.store.products[productID]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*repository.ProductWithCategory, error) {
	out := make([]*repository.ProductWithCategory, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, &repository.ProductWithCategory{Product: *p})
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCategory(categoryID string) (int, error) {
	n := 0
	for _, p := range r.store.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type fakeMovementRepo struct {
	store *fakeStore
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	clone := *m
	r.store.movements = append(r.store.movements, &clone)
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*repository.MovementWithProduct, error) {
	out := make([]*repository.MovementWithProduct, 0)
	for _, m := range r.store.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		mp := &repository.MovementWithProduct{Movement: *m}
		if p, ok := r.store.products[m.ProductID]; ok {
			mp.ProductName = p.Name
			mp.ProductSKU = p.SKU
			mp.ProductPrice = p.Price
		}
		out = append(out, mp)
	}
	return out, nil
}

func (r *fakeMovementRepo) Recent(limit int) ([]*repository.MovementWithProduct, error) {
	all, _ := r.List(repository.MovementFilter{})
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *fakeMovementRepo) DeleteByProduct(productID string) error {
	kept := r.store.movements[:0]
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.store.movements = kept
	return nil
}

type fakeTxRunner struct {
	store       *fakeStore
	productRepo *fakeProductRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockMovementRepository, repository.ProductRepository) error) error {
	snap := tx.store.snapshot()
	if err := fn(&fakeMovementRepo{store: tx.store}, tx.productRepo); err != nil {
		tx.store.restore(snap)
		return err
	}
	return nil
}

// ── armado común ──────────────────────────────────────────────────────────────

func buildUseCase(store *fakeStore) (*inventory.RegisterMovementUseCase, *fakeProductRepo) {
	productRepo := &fakeProductRepo{store: store}
	txRunner := &fakeTxRunner{store: store, productRepo: productRepo}
	uc := inventory.NewRegisterMovementUseCase(txRunner, &fakeMovementRepo{store: store})
	return uc, productRepo
}

func seedProduct(store *fakeStore, id, name, sku string, stock int) {
	store.products[id] = &entity.Product{
		ID:       id,
		Name:     name,
		SKU:      sku,
		Price:    decimal.NewFromInt(100),
		Stock:    stock,
		MinStock: 10,
	}
}

// ── registro de movimientos ───────────────────────────────────────────────────

// TestRegisterMovement_EntradaIncrementaStock verifica que una entrada suma la
// cantidad al stock y queda registrada en el ledger.
func TestRegisterMovement_EntradaIncrementaStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, _ := buildUseCase(store)

	resp, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  30,
		Reason:    "compra proveedor",
	})

	require.NoError(t, err)
	assert.Equal(t, 80, store.products["p1"].Stock, "50 + 30 = 80")
	assert.Equal(t, "Tornillo 3mm", resp.Product.Name)
	assert.Equal(t, "TOR-3", resp.Product.SKU)
	assert.Len(t, store.movements, 1)
	assert.NotEmpty(t, resp.ID, "el movimiento debe recibir un ID")
}

// TestRegisterMovement_SalidaDecrementaStock verifica que una salida resta la
// cantidad del stock.
func TestRegisterMovement_SalidaDecrementaStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, _ := buildUseCase(store)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeSalida,
		Quantity:  20,
	})

	require.NoError(t, err)
	assert.Equal(t, 30, store.products["p1"].Stock, "50 - 20 = 30")
}

// TestRegisterMovement_SalidaExactaDejaEnCero verifica el caso límite: una
// salida por exactamente el stock disponible es válida y deja el stock en 0.
func TestRegisterMovement_SalidaExactaDejaEnCero(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, _ := buildUseCase(store)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeSalida,
		Quantity:  50,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, store.products["p1"].Stock)
}

// TestRegisterMovement_StockInsuficiente verifica que una salida mayor al
// stock disponible se rechaza sin modificar nada.
func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 5)
	uc, _ := buildUseCase(store)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeSalida,
		Quantity:  6,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, store.products["p1"].Stock, "el stock no debe cambiar")
	assert.Empty(t, store.movements, "no debe quedar movimiento en el ledger")
}

// TestRegisterMovement_ProductoInexistente verifica ErrNotFound para un
// producto que no existe.
func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc, _ := buildUseCase(store)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "no-existe",
		Type:      entity.MovementTypeEntrada,
		Quantity:  1,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRegisterMovement_AtomicidadEnFalloDeEscritura verifica que si la
// actualización de stock falla después de insertar el movimiento, el rollback
// deja el ledger y el stock intactos: nunca queda estado parcial.
func TestRegisterMovement_AtomicidadEnFalloDeEscritura(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, productRepo := buildUseCase(store)
	productRepo.failUpdateStock = true

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  10,
	})

	require.Error(t, err)
	assert.Equal(t, 50, store.products["p1"].Stock, "rollback: el stock no cambia")
	assert.Empty(t, store.movements, "rollback: el movimiento insertado se descarta")
}

// TestRegisterMovement_LeyDeConservacion verifica que tras una secuencia de
// movimientos el stock final es stock inicial + entradas - salidas.
func TestRegisterMovement_LeyDeConservacion(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 100)
	uc, _ := buildUseCase(store)

	steps := []struct {
		tipo     string
		cantidad int
	}{
		{entity.MovementTypeEntrada, 40},
		{entity.MovementTypeSalida, 25},
		{entity.MovementTypeSalida, 10},
		{entity.MovementTypeEntrada, 5},
	}
	for _, s := range steps {
		_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
			ProductID: "p1",
			Type:      s.tipo,
			Quantity:  s.cantidad,
		})
		require.NoError(t, err)
	}

	// 100 + 40 - 25 - 10 + 5 = 110
	assert.Equal(t, 110, store.products["p1"].Stock)
	assert.Len(t, store.movements, 4)
}

// TestRegisterMovement_FechaRetroactiva verifica que una fecha explícita se
// respeta (normalizada a UTC) en lugar de la hora del servidor.
func TestRegisterMovement_FechaRetroactiva(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, _ := buildUseCase(store)

	backdate := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	resp, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  1,
		Date:      &backdate,
	})

	require.NoError(t, err)
	assert.True(t, resp.Date.Equal(backdate), "la fecha retroactiva debe conservarse")
}

// ── validación de entrada ─────────────────────────────────────────────────────

func TestRegisterMovement_ErrorSinProducto(t *testing.T) {
	uc, _ := buildUseCase(newFakeStore())
	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		Type: entity.MovementTypeEntrada, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ErrorTipoDesconocido(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, _ := buildUseCase(store)
	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1", Type: "ajuste", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ErrorCantidadNoPositiva(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, _ := buildUseCase(store)

	for _, qty := range []int{0, -3} {
		_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
			ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe ser inválida", qty)
	}
}

// ── consulta del ledger ───────────────────────────────────────────────────────

// TestListMovements_FiltroTipoDesconocidoSeIgnora verifica que un tipo no
// reconocido en el filtro devuelve todos los movimientos en vez de fallar.
func TestListMovements_FiltroTipoDesconocidoSeIgnora(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	uc, _ := buildUseCase(store)

	_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 5,
	})
	require.NoError(t, err)

	out, err := uc.ListMovements(context.Background(), repository.MovementFilter{Type: "ajuste"})
	require.NoError(t, err)
	assert.Len(t, out, 1, "el tipo desconocido se ignora, no filtra nada")
}

// TestListMovements_SinResultadosDevuelveSliceVacio verifica el contrato:
// slice vacío, nunca nil ni error.
func TestListMovements_SinResultadosDevuelveSliceVacio(t *testing.T) {
	uc, _ := buildUseCase(newFakeStore())
	out, err := uc.ListMovements(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// TestListMovements_FiltroPorProducto verifica el filtrado por producto con
// los datos del producto resueltos en la respuesta.
func TestListMovements_FiltroPorProducto(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Tornillo 3mm", "TOR-3", 50)
	seedProduct(store, "p2", "Tuerca 3mm", "TUE-3", 50)
	uc, _ := buildUseCase(store)

	for _, id := range []string{"p1", "p2", "p1"} {
		_, err := uc.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
			ProductID: id, Type: entity.MovementTypeEntrada, Quantity: 1,
		})
		require.NoError(t, err)
	}

	out, err := uc.ListMovements(context.Background(), repository.MovementFilter{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, m := range out {
		assert.Equal(t, "p1", m.ProductID)
		assert.Equal(t, "Tornillo 3mm", m.Product.Name)
	}
}
