package tabular

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner variante tabular del runner: el almacén no ofrece transacción
// multi-fila, así que Run solo pasa los repositorios tal cual. El append al log
// y el update del balance son dos escrituras separadas; un fallo entre ambas
// deja el log por delante del balance y se repara con ReconcileBalance (el log
// es la fuente de verdad).
type TxRunner struct {
	catalogRepo repository.CatalogRepository
	movRepo     repository.MovementRepository
}

// NewTxRunner construye el runner con los repositorios tabulares.
func NewTxRunner(catalogRepo repository.CatalogRepository, movRepo repository.MovementRepository) *TxRunner {
	return &TxRunner{catalogRepo: catalogRepo, movRepo: movRepo}
}

// Run ejecuta fn con los repositorios; no hay Commit ni Rollback que hacer.
func (r *TxRunner) Run(ctx context.Context, fn func(
	catalogRepo repository.CatalogRepository,
	movRepo repository.MovementRepository,
) error) error {
	return fn(r.catalogRepo, r.movRepo)
}
