package tabular_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/tabular"
)

// seedCatalog carga una hoja de catálogo con el esquema de producción.
func seedCatalog(store *tabular.MemoryStore) {
	store.Seed("inventario", [][]string{
		{"codigo", "descripcion", "estado", "estante", "balance_actual", "recuento_fisico", "fecha_recuento", "balance_inicial"},
		{"500018", "Taladro percutor", "disponible", "E-03", "10", "", "", "10"},
		{"600042", "Llave inglesa", "disponible", "E-07", "3", "3", "2024-04-01", "5"},
	})
}

func TestCatalogRepo_FindByCode(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedCatalog(store)
	repo := tabular.NewCatalogRepository(store, "inventario")

	items, err := repo.FindByCode("600042")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Llave inglesa", items[0].Description)
	assert.Equal(t, 3, items[0].CachedBalance)
	assert.Equal(t, 5, items[0].BaselineStock)
	require.NotNil(t, items[0].PhysicalCount)
	assert.Equal(t, 3, *items[0].PhysicalCount)

	none, err := repo.FindByCode("999999")
	require.NoError(t, err)
	assert.Empty(t, none, "código ausente no es un error del repositorio")
}

func TestCatalogRepo_FindByCodeForUpdate(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedCatalog(store)
	repo := tabular.NewCatalogRepository(store, "inventario")

	item, err := repo.FindByCodeForUpdate("500018")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 10, item.CachedBalance)

	missing, err := repo.FindByCodeForUpdate("999999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalogRepo_UpdateCachedBalance(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedCatalog(store)
	repo := tabular.NewCatalogRepository(store, "inventario")

	require.NoError(t, repo.UpdateCachedBalance("500018", 6))

	// La celda se reescribe en la hoja, no solo en memoria del repositorio.
	cell, err := store.GetCell("inventario", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "6", cell)

	err = repo.UpdateCachedBalance("999999", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_Create(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedCatalog(store)
	repo := tabular.NewCatalogRepository(store, "inventario")

	err := repo.Create(&entity.CatalogItem{
		Code: "700001", Description: "Martillo", Status: "disponible",
		Location: "E-09", BaselineStock: 5, CachedBalance: 5,
	})
	require.NoError(t, err)

	items, err := repo.FindByCode("700001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].CachedBalance)
}

func TestCatalogRepo_EncabezadoInvalido(t *testing.T) {
	store := tabular.NewMemoryStore()
	store.Seed("inventario", [][]string{{"codigo", "descripcion"}})
	repo := tabular.NewCatalogRepository(store, "inventario")

	_, err := repo.FindByCode("500018")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable,
		"una hoja con columnas faltantes es dato malformado del almacén")
}

// La hoja puede quedar vacía entre dos llamadas (borrada o truncada a mano)
// después de que el mapeo de columnas ya se cacheó: tiene que reportarse como
// almacén no disponible, nunca reventar.
func TestCatalogRepo_HojaVaciadaTrasPrimeraLectura(t *testing.T) {
	store := tabular.NewMemoryStore()
	seedCatalog(store)
	repo := tabular.NewCatalogRepository(store, "inventario")

	_, err := repo.FindByCode("500018")
	require.NoError(t, err)

	store.Seed("inventario", [][]string{})

	_, err = repo.FindByCode("500018")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = repo.List()
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestCatalogRepo_TablaInexistente(t *testing.T) {
	repo := tabular.NewCatalogRepository(tabular.NewMemoryStore(), "inventario")

	_, err := repo.List()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}
