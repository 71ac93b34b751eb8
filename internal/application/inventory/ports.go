package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función con repositorios atados a una misma unidad de trabajo.
// En la variante postgres es una transacción real (Commit/Rollback); en la variante
// tabular es un passthrough: el append al log y el update del balance son dos
// escrituras separadas y el log queda como fuente de verdad (ver ReconcileBalance).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		catalogRepo repository.CatalogRepository,
		movRepo repository.MovementRepository,
	) error) error
}
