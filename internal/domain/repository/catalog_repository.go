package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CatalogRepository define el puerto de persistencia para el catálogo de herramientas.
// FindByCode devuelve todas las filas que coinciden con el código, en el orden de
// iteración del almacén: el resolver decide si tomar la primera o rechazar duplicados.
type CatalogRepository interface {
	FindByCode(code string) ([]*entity.CatalogItem, error)
	// FindByCodeForUpdate opcional: bloquea la fila para update (SELECT FOR UPDATE
	// en postgres; en la variante tabular equivale a FindByCode).
	FindByCodeForUpdate(code string) (*entity.CatalogItem, error)
	List() ([]*entity.CatalogItem, error)
	Create(item *entity.CatalogItem) error
	UpdateCachedBalance(code string, balance int) error
}
