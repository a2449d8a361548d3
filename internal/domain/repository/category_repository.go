package repository

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las implementaciones deben rechazar inserciones/updates que violen la
// unicidad (name, tenant_id) con domain.ErrNameConflict, porque el pre-check
// del manager es inherentemente racy bajo escritores concurrentes.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByIDAndTenant(id, tenantID string) (*entity.Category, error)
	GetByNameAndTenant(name, tenantID string) (*entity.Category, error)
	ListByTenant(tenantID string) ([]*entity.Category, error)
	ListByParent(parentID, tenantID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
