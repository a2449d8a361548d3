// Package memory provee adaptadores de persistencia en memoria para tests y
// ejecución local sin PostgreSQL. Replican el contrato de los adaptadores
// postgres, incluida la traducción de conflictos de unicidad a errores de
// dominio, para que las propiedades de concurrencia valgan también en tests.
package memory

import (
	"sync"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Category
}

// NewCategoryRepository construye el adaptador vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{items: make(map[string]*entity.Category)}
}

// Create inserta la categoría; unicidad (name, tenant_id) como el índice de la DB.
func (r *CategoryRepo) Create(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.TenantID == category.TenantID && c.Name == category.Name {
			return domain.ErrNameConflict
		}
	}
	clone := *category
	r.items[category.ID] = &clone
	return nil
}

func (r *CategoryRepo) GetByIDAndTenant(id, tenantID string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *CategoryRepo) GetByNameAndTenant(name, tenantID string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.TenantID == tenantID && c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) ListByTenant(tenantID string) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Category
	for _, c := range r.items {
		if c.TenantID == tenantID {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *CategoryRepo) ListByParent(parentID, tenantID string) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Category
	for _, c := range r.items {
		if c.TenantID == tenantID && c.ParentID == parentID {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[category.ID]; !ok {
		return nil
	}
	for _, c := range r.items {
		if c.ID != category.ID && c.TenantID == category.TenantID && c.Name == category.Name {
			return domain.ErrNameConflict
		}
	}
	clone := *category
	r.items[category.ID] = &clone
	return nil
}

func (r *CategoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}
