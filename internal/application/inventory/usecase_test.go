package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalogRepo struct {
	items    []*entity.CatalogItem
	failWith error
}

func (r *fakeCatalogRepo) FindByCode(code string) ([]*entity.CatalogItem, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []*entity.CatalogItem
	for _, item := range r.items {
		if item.Code == code {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) FindByCodeForUpdate(code string) (*entity.CatalogItem, error) {
	items, err := r.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (r *fakeCatalogRepo) List() ([]*entity.CatalogItem, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.items, nil
}

func (r *fakeCatalogRepo) Create(item *entity.CatalogItem) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCatalogRepo) UpdateCachedBalance(code string, balance int) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, item := range r.items {
		if item.Code == code {
			item.CachedBalance = balance
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrNotFound, code)
}

type fakeMovementRepo struct {
	movements []*entity.Movement
	failWith  error
}

func (r *fakeMovementRepo) Append(m *entity.Movement) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByCode(code string) ([]*entity.Movement, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.Code == code {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if offset >= len(r.movements) {
		return nil, nil
	}
	out := r.movements[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// passRunner variante sin transacción, como el runner tabular.
type passRunner struct {
	catalogRepo repository.CatalogRepository
	movRepo     repository.MovementRepository
}

func (r *passRunner) Run(_ context.Context, fn func(
	catalogRepo repository.CatalogRepository,
	movRepo repository.MovementRepository,
) error) error {
	return fn(r.catalogRepo, r.movRepo)
}

// fixedClock siempre devuelve la misma hora.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 5, 20, 14, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))

// buildEngine arma el motor sobre fakes con un ítem 500018 de stock 10.
func buildEngine(strategy inventory.Strategy) (*inventory.RegisterMovementUseCase, *fakeCatalogRepo, *fakeMovementRepo) {
	catalogRepo := &fakeCatalogRepo{items: []*entity.CatalogItem{{
		Code:          "500018",
		Description:   "Taladro percutor",
		Status:        "disponible",
		Location:      "E-03",
		BaselineStock: 10,
		CachedBalance: 10,
	}}}
	movRepo := &fakeMovementRepo{}
	resolver := catalog.NewResolveUseCase(catalogRepo, false)
	runner := &passRunner{catalogRepo: catalogRepo, movRepo: movRepo}
	uc := inventory.NewRegisterMovementUseCase(runner, resolver, movRepo, strategy, fixedClock{t: testNow})
	return uc, catalogRepo, movRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios del motor de movimientos
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: una SALIDA válida descuenta del balance y queda en el log;
// la siguiente SALIDA que excede el balance se rechaza sin escribir.
func TestRegisterMovement_SalidaYStockInsuficiente(t *testing.T) {
	uc, catalogRepo, movRepo := buildEngine(inventory.StrategyCached)

	receipt, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "SALIDA", Quantity: 4, User: "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, receipt.NewBalance, "10 - 4 debe dejar balance 6")
	assert.Equal(t, testNow, receipt.Timestamp)
	require.Len(t, movRepo.movements, 1, "el log debe crecer exactamente una fila")
	assert.Equal(t, "Taladro percutor", movRepo.movements[0].Description,
		"la descripción se desnormaliza desde el catálogo")
	assert.Equal(t, 6, catalogRepo.items[0].CachedBalance, "el balance materializado se actualiza en el mismo paso")

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "SALIDA", Quantity: 10, User: "ana",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuff *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuff, "el error debe llevar balance y cantidad solicitada")
	assert.Equal(t, 6, insuff.Balance)
	assert.Equal(t, 10, insuff.Requested)

	assert.Len(t, movRepo.movements, 1, "un movimiento rechazado no se escribe")
	assert.Equal(t, 6, catalogRepo.items[0].CachedBalance, "el balance no cambia ante un rechazo")
}

// Escenario B: código vacío se rechaza sin tocar el almacén.
func TestRegisterMovement_CodigoVacio(t *testing.T) {
	uc, catalogRepo, movRepo := buildEngine(inventory.StrategyCached)
	// Si el motor consultara el almacén, este error se filtraría.
	catalogRepo.failWith = fmt.Errorf("%w: no debería consultarse", domain.ErrStoreUnavailable)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "   ", Type: "ENTRADA", Quantity: 1, User: "ana",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable, "la validación va antes que cualquier lectura")
	assert.Empty(t, movRepo.movements)
}

// Escenario C: código ausente del catálogo.
func TestRegisterMovement_CodigoInexistente(t *testing.T) {
	uc, _, movRepo := buildEngine(inventory.StrategyCached)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "999999", Type: "ENTRADA", Quantity: 1, User: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movRepo.movements)
}

// Escenario D: cantidad cero o negativa.
func TestRegisterMovement_CantidadInvalida(t *testing.T) {
	uc, _, movRepo := buildEngine(inventory.StrategyCached)

	for _, qty := range []int{0, -3} {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			Code: "500018", Type: "ENTRADA", Quantity: qty, User: "ana",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
	assert.Empty(t, movRepo.movements)
}

func TestRegisterMovement_TipoInvalido(t *testing.T) {
	uc, _, _ := buildEngine(inventory.StrategyCached)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "PRESTAMO", Quantity: 1, User: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_UsuarioVacio(t *testing.T) {
	uc, _, _ := buildEngine(inventory.StrategyCached)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "ENTRADA", Quantity: 1, User: "  ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una ENTRADA procede incluso sobre un balance negativo (hoja editada a mano o
// carrera entre escrituras): es la única operación que puede recuperar el stock.
// El chequeo de stock insuficiente aplica solo a SALIDA.
func TestRegisterMovement_EntradaSobreBalanceNegativo(t *testing.T) {
	uc, catalogRepo, movRepo := buildEngine(inventory.StrategyCached)
	catalogRepo.items[0].CachedBalance = -10

	receipt, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "ENTRADA", Quantity: 5, User: "ana",
	})
	require.NoError(t, err, "una entrada nunca se rechaza por stock")
	assert.Equal(t, -5, receipt.NewBalance)
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, -5, catalogRepo.items[0].CachedBalance)

	// Las salidas siguen vedadas hasta que el balance cubra la cantidad.
	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "SALIDA", Quantity: 1, User: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// P5: entradas con espacios y tipo en minúsculas equivalen a la forma canónica.
func TestRegisterMovement_NormalizaEntradas(t *testing.T) {
	uc, _, movRepo := buildEngine(inventory.StrategyCached)

	receipt, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: " 500018 ", Type: "entrada", Quantity: 3, User: " ana ",
	})
	require.NoError(t, err)
	assert.Equal(t, 13, receipt.NewBalance)

	m := movRepo.movements[0]
	assert.Equal(t, "500018", m.Code)
	assert.Equal(t, entity.MovementTypeENTRADA, m.Type, "el tipo se normaliza a mayúsculas")
	assert.Equal(t, "ana", m.User)
}

// Escenario E: almacén inaccesible; cero escrituras parciales.
func TestRegisterMovement_AlmacenNoDisponible(t *testing.T) {
	uc, catalogRepo, movRepo := buildEngine(inventory.StrategyCached)
	catalogRepo.failWith = fmt.Errorf("%w: timeout de red", domain.ErrStoreUnavailable)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "ENTRADA", Quantity: 1, User: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, movRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estrategias de balance
// ──────────────────────────────────────────────────────────────────────────────

// Con logsum el balance sale del stock de alta más la suma del log, y el campo
// materializado no se toca.
func TestRegisterMovement_EstrategiaLogSum(t *testing.T) {
	uc, catalogRepo, movRepo := buildEngine(inventory.StrategyLogSum)
	movRepo.movements = []*entity.Movement{
		{Code: "500018", Type: entity.MovementTypeENTRADA, Quantity: 5},
		{Code: "500018", Type: entity.MovementTypeSALIDA, Quantity: 3},
	}
	// balance actual: 10 + 5 - 3 = 12

	receipt, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "SALIDA", Quantity: 12, User: "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, receipt.NewBalance)
	assert.Equal(t, 10, catalogRepo.items[0].CachedBalance,
		"logsum no mantiene el campo materializado")

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Code: "500018", Type: "SALIDA", Quantity: 1, User: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "el balance derivado del log ya es 0")
}

// P1/P2/P3 sobre una secuencia mixta: el balance derivado nunca es negativo,
// el log crece solo con los éxitos y el campo materializado coincide con la
// suma del log.
func TestRegisterMovement_PropiedadesDeConsistencia(t *testing.T) {
	uc, catalogRepo, movRepo := buildEngine(inventory.StrategyCached)

	steps := []struct {
		kind string
		qty  int
		ok   bool
	}{
		{"SALIDA", 4, true},   // 6
		{"ENTRADA", 2, true},  // 8
		{"SALIDA", 9, false},  // rechazada
		{"SALIDA", 8, true},   // 0
		{"SALIDA", 1, false},  // rechazada
		{"ENTRADA", 5, true},  // 5
	}
	successes := 0
	for i, s := range steps {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			Code: "500018", Type: s.kind, Quantity: s.qty, User: "ana",
		})
		if s.ok {
			require.NoError(t, err, "paso %d debía pasar", i)
			successes++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock, "paso %d debía rechazarse", i)
		}
	}

	require.Len(t, movRepo.movements, successes, "P2: una fila por movimiento exitoso")
	sum := 0
	for _, m := range movRepo.movements {
		assert.Greater(t, m.Quantity, 0, "P2: toda fila persistida tiene cantidad positiva")
		assert.True(t, entity.IsValidMovementType(m.Type), "P2: tipo siempre ENTRADA o SALIDA")
		sum += m.SignedQuantity()
	}
	derived := catalogRepo.items[0].BaselineStock + sum
	assert.GreaterOrEqual(t, derived, 0, "P1: el balance derivado del log nunca es negativo")
	assert.Equal(t, derived, catalogRepo.items[0].CachedBalance,
		"P3: balance materializado == stock de alta + suma del log")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación
// ──────────────────────────────────────────────────────────────────────────────

// Simula un fallo entre el append al log y el update del balance: el log quedó
// por delante y ReconcileBalance lo repara tomando el log como fuente de verdad.
func TestReconcileBalance_ReparaDesacuerdo(t *testing.T) {
	uc, catalogRepo, movRepo := buildEngine(inventory.StrategyCached)

	movRepo.movements = append(movRepo.movements, &entity.Movement{
		Code: "500018", Type: entity.MovementTypeSALIDA, Quantity: 4, User: "ana",
	})
	// cached sigue en 10, el log dice 6

	balance, err := uc.ReconcileBalance(context.Background(), "500018")
	require.NoError(t, err)
	assert.Equal(t, 6, balance)
	assert.Equal(t, 6, catalogRepo.items[0].CachedBalance)
}

func TestReconcileBalance_CodigoInexistente(t *testing.T) {
	uc, _, _ := buildEngine(inventory.StrategyCached)

	_, err := uc.ReconcileBalance(context.Background(), "999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Varios
// ──────────────────────────────────────────────────────────────────────────────

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"cached", "logsum"} {
		s, err := inventory.ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, inventory.Strategy(name), s)
	}

	_, err := inventory.ParseStrategy("eventual")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListMovements_FiltraPorCodigo(t *testing.T) {
	uc, _, movRepo := buildEngine(inventory.StrategyCached)
	movRepo.movements = []*entity.Movement{
		{Code: "500018", Type: entity.MovementTypeENTRADA, Quantity: 1},
		{Code: "600042", Type: entity.MovementTypeENTRADA, Quantity: 2},
		{Code: "500018", Type: entity.MovementTypeSALIDA, Quantity: 1},
	}

	byCode, err := uc.ListMovements(context.Background(), " 500018 ", 0, 0)
	require.NoError(t, err)
	assert.Len(t, byCode, 2)

	all, err := uc.ListMovements(context.Background(), "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
