package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// CategoryUseCase maneja el ciclo de vida de categorías: unicidad de nombre
// por tenant, enlaces jerárquicos y guardas de borrado.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	tx         TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, products repository.ProductRepository, tx TxRunner) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products, tx: tx}
}

// CanManage indica si los roles permiten administrar categorías (SELLER o ADMIN).
func (uc *CategoryUseCase) CanManage(roles []string) bool {
	return domain.Actor{Roles: roles}.CanManageCatalog()
}

// Create crea una categoría nueva para el tenant del actor.
// Falla con ErrUnauthorized sin rol SELLER/ADMIN, ErrNameConflict si el nombre
// ya existe en el tenant y ErrNotFound si el padre no resuelve en el tenant.
func (uc *CategoryUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if !actor.CanManageCatalog() {
		return nil, domain.ErrUnauthorized
	}
	if err := validateCategoryFields(in.Name, in.Description); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		TenantID:    actor.TenantID,
		ParentID:    in.ParentID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, _ repository.ProductRepository) error {
		existing, err := categories.GetByNameAndTenant(in.Name, actor.TenantID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrNameConflict
		}
		if in.ParentID != "" {
			parent, err := categories.GetByIDAndTenant(in.ParentID, actor.TenantID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.ErrNotFound
			}
		}
		// El índice único (name, tenant_id) cubre la carrera entre el pre-check
		// y el insert; el repositorio traduce la violación a ErrNameConflict.
		return categories.Create(category)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("category_id", category.ID).Str("tenant_id", actor.TenantID).Msg("categoría creada")
	return toCategoryResponse(category, nil), nil
}

// GetByID obtiene una categoría del tenant, con los IDs de sus hijas directas.
func (uc *CategoryUseCase) GetByID(categoryID, tenantID string) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByIDAndTenant(categoryID, tenantID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	children, err := uc.categories.ListByParent(categoryID, tenantID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, children), nil
}

// ListAll lista todas las categorías del tenant (orden no significativo).
func (uc *CategoryUseCase) ListAll(tenantID string) ([]dto.CategoryResponse, error) {
	all, err := uc.categories.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	byParent := groupByParent(all)
	out := make([]dto.CategoryResponse, 0, len(all))
	for _, c := range all {
		out = append(out, *toCategoryResponse(c, byParent[c.ID]))
	}
	return out, nil
}

// GetTree construye el bosque de categorías del tenant: raíces sin padre,
// cada una con sus hijas pobladas recursivamente. Opera sobre un único fetch
// del tenant completo (nunca una query por nodo) y termina incluso si el
// grafo almacenado está malformado (guarda de visitados).
func (uc *CategoryUseCase) GetTree(tenantID string) ([]dto.CategoryTreeResponse, error) {
	all, err := uc.categories.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	byParent := groupByParent(all)

	visited := make(map[string]bool, len(all))
	roots := make([]dto.CategoryTreeResponse, 0)
	for _, c := range all {
		if c.ParentID == "" {
			roots = append(roots, buildTreeNode(c, byParent, visited))
		}
	}
	return roots, nil
}

// GetChildren devuelve las hijas directas de una categoría.
// Falla con ErrNotFound si el padre no resuelve en el tenant.
func (uc *CategoryUseCase) GetChildren(parentID, tenantID string) ([]dto.CategoryResponse, error) {
	parent, err := uc.categories.GetByIDAndTenant(parentID, tenantID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	children, err := uc.categories.ListByParent(parentID, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(children))
	for _, c := range children {
		grand, err := uc.categories.ListByParent(c.ID, tenantID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toCategoryResponse(c, grand))
	}
	return out, nil
}

// Update actualiza nombre, descripción y padre de una categoría.
// Si el nombre cambia se re-chequea unicidad excluyendo la propia fila.
// Rechaza el auto-parentesco directo con ErrInvalidParent; ciclos más largos
// (A→B→A) no se chequean, es una limitación conocida.
func (uc *CategoryUseCase) Update(ctx context.Context, actor domain.Actor, categoryID string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if !actor.CanManageCatalog() {
		return nil, domain.ErrUnauthorized
	}
	if err := validateCategoryFields(in.Name, in.Description); err != nil {
		return nil, err
	}

	var updated *entity.Category
	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, _ repository.ProductRepository) error {
		category, err := categories.GetByIDAndTenant(categoryID, actor.TenantID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}

		if category.Name != in.Name {
			existing, err := categories.GetByNameAndTenant(in.Name, actor.TenantID)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != categoryID {
				return domain.ErrNameConflict
			}
		}

		if in.ParentID != "" && in.ParentID != category.ParentID {
			if in.ParentID == categoryID {
				return domain.ErrInvalidParent
			}
			parent, err := categories.GetByIDAndTenant(in.ParentID, actor.TenantID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.ErrNotFound
			}
		}

		category.Name = in.Name
		category.Description = in.Description
		category.ParentID = in.ParentID
		category.UpdatedAt = time.Now()
		if err := categories.Update(category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	children, err := uc.categories.ListByParent(categoryID, actor.TenantID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("category_id", categoryID).Str("tenant_id", actor.TenantID).Msg("categoría actualizada")
	return toCategoryResponse(updated, children), nil
}

// Delete elimina (hard delete) una categoría sin referencias vivas.
// Falla con ErrCategoryHasProducts si algún producto no eliminado la
// referencia y con ErrCategoryHasChildren si tiene subcategorías.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor domain.Actor, categoryID string) error {
	if !actor.CanManageCatalog() {
		return domain.ErrUnauthorized
	}
	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		category, err := categories.GetByIDAndTenant(categoryID, actor.TenantID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		count, err := products.CountActiveByCategory(actor.TenantID, categoryID)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrCategoryHasProducts
		}
		children, err := categories.ListByParent(categoryID, actor.TenantID)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return domain.ErrCategoryHasChildren
		}
		return categories.Delete(categoryID)
	})
	if err != nil {
		return err
	}
	log.Info().Str("category_id", categoryID).Str("tenant_id", actor.TenantID).Msg("categoría eliminada")
	return nil
}

func validateCategoryFields(name, description string) error {
	if strings.TrimSpace(name) == "" || len(name) > 255 {
		return domain.ErrInvalidInput
	}
	if len(description) > 1000 {
		return domain.ErrInvalidInput
	}
	return nil
}

// groupByParent indexa las categorías por ParentID para armar jerarquías
// en memoria sin queries recursivas.
func groupByParent(all []*entity.Category) map[string][]*entity.Category {
	byParent := make(map[string][]*entity.Category)
	for _, c := range all {
		if c.ParentID != "" {
			byParent[c.ParentID] = append(byParent[c.ParentID], c)
		}
	}
	return byParent
}

func buildTreeNode(c *entity.Category, byParent map[string][]*entity.Category, visited map[string]bool) dto.CategoryTreeResponse {
	visited[c.ID] = true
	node := dto.CategoryTreeResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Description: c.Description,
		Children:    []dto.CategoryTreeResponse{},
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, child := range byParent[c.ID] {
		if visited[child.ID] {
			// Grafo malformado (ciclo): cortar aquí en lugar de recursar infinito.
			continue
		}
		node.Children = append(node.Children, buildTreeNode(child, byParent, visited))
	}
	return node
}

func toCategoryResponse(c *entity.Category, children []*entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	childrenIDs := make([]string, 0, len(children))
	for _, child := range children {
		childrenIDs = append(childrenIDs, child.ID)
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Description: c.Description,
		ChildrenIDs: childrenIDs,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
