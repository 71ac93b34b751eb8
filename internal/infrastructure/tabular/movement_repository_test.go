package tabular_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/tabular"
)

var movementHeader = []string{"timestamp", "codigo", "descripcion", "usuario", "tipo", "cantidad", "fecha", "nota"}

func seedMovements(store *tabular.MemoryStore, rows ...[]string) {
	all := append([][]string{movementHeader}, rows...)
	store.Seed("movimientos", all)
}

func TestMovementRepo_Append(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedMovements(store)
	repo := tabular.NewMovementRepository(store, "movimientos")

	ts := time.Date(2024, 5, 20, 14, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	err := repo.Append(&entity.Movement{
		Timestamp:   ts,
		Code:        "500018",
		Description: "Taladro percutor",
		User:        "ana",
		Type:        entity.MovementTypeSALIDA,
		Quantity:    4,
		Note:        "obra calle 80",
	})
	require.NoError(t, err)

	rows, err := store.ReadAll("movimientos")
	require.NoError(t, err)
	require.Len(t, rows, 2, "encabezado más la fila nueva")
	assert.Equal(t, []string{
		"2024-05-20 14:30:00", "500018", "Taladro percutor", "ana", "SALIDA", "4", "2024-05-20", "obra calle 80",
	}, rows[1])
}

func TestMovementRepo_ListByCode(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedMovements(store,
		[]string{"2024-05-20 09:00:00", "500018", "Taladro", "ana", "ENTRADA", "2", "2024-05-20", ""},
		[]string{"2024-05-20 10:00:00", "600042", "Llave", "luis", "SALIDA", "1", "2024-05-20", ""},
		[]string{"2024-05-20 11:00:00", "500018", "Taladro", "ana", "SALIDA", "1", "2024-05-20", ""},
	)
	repo := tabular.NewMovementRepository(store, "movimientos")

	movements, err := repo.ListByCode("500018")
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, entity.MovementTypeENTRADA, movements[0].Type, "orden de registro")
	assert.Equal(t, entity.MovementTypeSALIDA, movements[1].Type)
	assert.Equal(t, 1, movements[0].SignedQuantity()+movements[1].SignedQuantity())
}

func TestMovementRepo_ListPaginado(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedMovements(store,
		[]string{"2024-05-20 09:00:00", "500018", "Taladro", "ana", "ENTRADA", "1", "2024-05-20", ""},
		[]string{"2024-05-20 10:00:00", "500018", "Taladro", "ana", "ENTRADA", "2", "2024-05-20", ""},
		[]string{"2024-05-20 11:00:00", "500018", "Taladro", "ana", "ENTRADA", "3", "2024-05-20", ""},
	)
	repo := tabular.NewMovementRepository(store, "movimientos")

	page, err := repo.List(2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0].Quantity)
	assert.Equal(t, 3, page[1].Quantity)

	empty, err := repo.List(10, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// Igual que con el catálogo: la pestaña del log vaciada tras cachear el mapeo
// se reporta como almacén no disponible.
func TestMovementRepo_HojaVaciadaTrasPrimeraLectura(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedMovements(store,
		[]string{"2024-05-20 09:00:00", "500018", "Taladro", "ana", "ENTRADA", "1", "2024-05-20", ""},
	)
	repo := tabular.NewMovementRepository(store, "movimientos")

	_, err := repo.ListByCode("500018")
	require.NoError(t, err)

	store.Seed("movimientos", [][]string{})

	_, err = repo.ListByCode("500018")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = repo.List(10, 0)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestMovementRepo_FilaMalformada(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedMovements(store,
		[]string{"2024-05-20 09:00:00", "500018", "Taladro", "ana", "ENTRADA", "dos", "2024-05-20", ""},
	)
	repo := tabular.NewMovementRepository(store, "movimientos")

	_, err := repo.ListByCode("500018")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
