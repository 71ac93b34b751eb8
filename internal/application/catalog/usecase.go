package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ResolveUseCase resuelve códigos de herramienta contra el catálogo (solo lectura)
// y da de alta nuevas herramientas.
type ResolveUseCase struct {
	catalogRepo repository.CatalogRepository
	strictCodes bool
}

// NewResolveUseCase construye el caso de uso. Con strictCodes activo, un código
// repetido en el catálogo se rechaza como ErrAmbiguousCode en lugar de tomar la
// primera fila.
func NewResolveUseCase(catalogRepo repository.CatalogRepository, strictCodes bool) *ResolveUseCase {
	return &ResolveUseCase{catalogRepo: catalogRepo, strictCodes: strictCodes}
}

// Resolve busca una herramienta por código exacto (case-sensitive).
// Recorta espacios antes de buscar; código vacío se rechaza sin consultar el almacén.
func (uc *ResolveUseCase) Resolve(ctx context.Context, code string) (*entity.CatalogItem, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: el código no puede estar vacío", domain.ErrInvalidInput)
	}

	items, err := uc.catalogRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	if uc.strictCodes && len(items) > 1 {
		return nil, fmt.Errorf("%w: %s aparece %d veces", domain.ErrAmbiguousCode, code, len(items))
	}
	// Primera coincidencia en orden del almacén (comportamiento de referencia).
	return items[0], nil
}

// List devuelve el catálogo completo en orden del almacén.
func (uc *ResolveUseCase) List(ctx context.Context) ([]*entity.CatalogItem, error) {
	return uc.catalogRepo.List()
}

// CreateItemInput entrada para dar de alta una herramienta en el catálogo.
type CreateItemInput struct {
	Code          string
	Description   string
	Status        string
	Location      string
	BaselineStock int
}

// Create da de alta una herramienta. El balance materializado inicia igual al
// stock de alta; el código queda como llave de búsqueda.
func (uc *ResolveUseCase) Create(ctx context.Context, input CreateItemInput) (*entity.CatalogItem, error) {
	input.Code = strings.TrimSpace(input.Code)
	if input.Code == "" {
		return nil, fmt.Errorf("%w: el código no puede estar vacío", domain.ErrInvalidInput)
	}
	if input.BaselineStock < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrInvalidInput)
	}

	existing, err := uc.catalogRepo.FindByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: ya existe el código %s", domain.ErrDuplicate, input.Code)
	}

	item := &entity.CatalogItem{
		Code:          input.Code,
		Description:   strings.TrimSpace(input.Description),
		Status:        strings.TrimSpace(input.Status),
		Location:      strings.TrimSpace(input.Location),
		BaselineStock: input.BaselineStock,
		CachedBalance: input.BaselineStock,
	}
	if err := uc.catalogRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}
