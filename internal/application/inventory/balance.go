package inventory

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Strategy define cómo se deriva el balance actual de una herramienta.
type Strategy string

const (
	// StrategyCached lee el campo materializado balance_actual de la fila del
	// catálogo (lectura O(1); requiere mantener el campo en cada commit).
	StrategyCached Strategy = "cached"
	// StrategyLogSum recalcula el balance como stock de alta + suma con signo del
	// log de movimientos (lectura O(n); nunca se desactualiza).
	StrategyLogSum Strategy = "logsum"
)

// ParseStrategy valida el nombre de la estrategia de balance.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCached, StrategyLogSum:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: estrategia de balance desconocida: %q", domain.ErrInvalidInput, s)
}

// sumMovements devuelve la suma con signo de los movimientos
// (Σ ENTRADA − Σ SALIDA).
func sumMovements(movements []*entity.Movement) int {
	total := 0
	for _, m := range movements {
		total += m.SignedQuantity()
	}
	return total
}

// currentBalance deriva el balance actual de item según la estrategia configurada.
// Ambas estrategias son semánticamente equivalentes mientras el campo materializado
// se mantenga; cuando difieren, el log es la fuente de verdad (ReconcileBalance).
func currentBalance(strategy Strategy, movRepo repository.MovementRepository, item *entity.CatalogItem) (int, error) {
	switch strategy {
	case StrategyLogSum:
		movements, err := movRepo.ListByCode(item.Code)
		if err != nil {
			return 0, err
		}
		return item.BaselineStock + sumMovements(movements), nil
	default:
		return item.CachedBalance, nil
	}
}
