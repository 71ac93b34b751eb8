package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos ENTRADA/SALIDA contra el catálogo:
// valida la entrada, deriva el balance actual, rechaza salidas que dejarían el
// balance negativo y confirma el movimiento en el log (append-only) junto con la
// actualización del balance materializado.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	resolver *catalog.ResolveUseCase
	movRepo  repository.MovementRepository
	strategy Strategy
	clock    Clock
	locks    *codeLocks
}

// NewRegisterMovementUseCase construye el motor de movimientos.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	resolver *catalog.ResolveUseCase,
	movRepo repository.MovementRepository,
	strategy Strategy,
	clock Clock,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		resolver: resolver,
		movRepo:  movRepo,
		strategy: strategy,
		clock:    clock,
		locks:    newCodeLocks(),
	}
}

// MovementInput entrada para registrar un movimiento. Code y User se recortan;
// Type es case-insensitive y se normaliza a mayúsculas.
type MovementInput struct {
	Code     string
	Type     string
	Quantity int
	User     string
	Note     string
}

// MovementReceipt resultado de un movimiento confirmado.
type MovementReceipt struct {
	Movement   *entity.Movement
	NewBalance int
	Timestamp  time.Time
}

// RegisterMovement ejecuta los pasos en orden estricto: normalizar, validar,
// resolver el código, derivar balance, proyectar, y solo si todo pasa, escribir.
// Ningún movimiento queda parcialmente registrado ante un fallo previo al append.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*MovementReceipt, error) {
	// 1. Normalizar
	input.Code = strings.TrimSpace(input.Code)
	input.Type = strings.ToUpper(strings.TrimSpace(input.Type))
	input.User = strings.TrimSpace(input.User)
	input.Note = strings.TrimSpace(input.Note)

	// 2. Validar campos, nombrando el campo ofensor
	if input.Code == "" {
		return nil, fmt.Errorf("%w: el código no puede estar vacío", domain.ErrInvalidInput)
	}
	if !entity.IsValidMovementType(input.Type) {
		return nil, fmt.Errorf("%w: el tipo de movimiento debe ser ENTRADA o SALIDA", domain.ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if input.User == "" {
		return nil, fmt.Errorf("%w: el usuario no puede estar vacío", domain.ErrInvalidInput)
	}

	// 3. Resolver el código (propaga NotFound / StoreUnavailable sin cambios)
	item, err := uc.resolver.Resolve(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	// Serializar commits por código: single-writer por herramienta
	unlock := uc.locks.lock(item.Code)
	defer unlock()

	now := uc.clock.Now()
	var receipt *MovementReceipt

	err = uc.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		movRepo repository.MovementRepository,
	) error {
		// 4. Balance actual: releer la fila dentro de la unidad de trabajo
		// (en postgres con FOR UPDATE) y derivar según la estrategia.
		locked, err := catalogRepo.FindByCodeForUpdate(item.Code)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, item.Code)
		}
		current, err := currentBalance(uc.strategy, movRepo, locked)
		if err != nil {
			return err
		}

		// 5-6. Proyectar y rechazar salidas que dejarían balance negativo
		mov := &entity.Movement{
			Timestamp:   now,
			Code:        locked.Code,
			Description: locked.Description,
			User:        input.User,
			Type:        input.Type,
			Quantity:    input.Quantity,
			Note:        input.Note,
		}
		// Solo las salidas se rechazan por stock: una ENTRADA procede aunque el
		// balance actual sea negativo (es la vía para recuperarlo).
		projected := current + mov.SignedQuantity()
		if mov.Type == entity.MovementTypeSALIDA && projected < 0 {
			return &domain.InsufficientStockError{
				Code:      locked.Code,
				Balance:   current,
				Requested: input.Quantity,
			}
		}

		// 7-8. Registrar el movimiento con timestamp del negocio
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		// 9. Mantener el balance materializado en el mismo paso lógico
		if uc.strategy == StrategyCached {
			if err := catalogRepo.UpdateCachedBalance(locked.Code, projected); err != nil {
				return err
			}
		}

		receipt = &MovementReceipt{Movement: mov, NewBalance: projected, Timestamp: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// 10. Devolver balance proyectado y timestamp
	return receipt, nil
}

// ReconcileBalance recalcula el balance desde el log (stock de alta + suma con
// signo) y reescribe balance_actual. Es la reparación para el caso en que un
// fallo entre el append al log y el update del balance los dejó en desacuerdo:
// el log manda.
func (uc *RegisterMovementUseCase) ReconcileBalance(ctx context.Context, code string) (int, error) {
	item, err := uc.resolver.Resolve(ctx, code)
	if err != nil {
		return 0, err
	}

	unlock := uc.locks.lock(item.Code)
	defer unlock()

	var reconciled int
	err = uc.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		movRepo repository.MovementRepository,
	) error {
		locked, err := catalogRepo.FindByCodeForUpdate(item.Code)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, item.Code)
		}
		movements, err := movRepo.ListByCode(locked.Code)
		if err != nil {
			return err
		}
		reconciled = locked.BaselineStock + sumMovements(movements)
		return catalogRepo.UpdateCachedBalance(locked.Code, reconciled)
	})
	if err != nil {
		return 0, err
	}
	return reconciled, nil
}

// ListMovements consulta el log. Con code vacío devuelve el log completo paginado;
// con code devuelve los movimientos de esa herramienta.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, code string, limit, offset int) ([]*entity.Movement, error) {
	code = strings.TrimSpace(code)
	if code != "" {
		return uc.movRepo.ListByCode(code)
	}
	return uc.movRepo.List(limit, offset)
}
