package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ProductSearchFilter filtros opcionales para búsqueda de productos.
// Todos se combinan con AND; los punteros/vacíos indican "sin filtro".
type ProductSearchFilter struct {
	Query      string // substring case-insensitive contra name O description
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int // basado en 0
	Size       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByTenantAndSKU consulta TODAS las filas, incluidas las soft-deleted:
// el chequeo de unicidad de SKU es deliberadamente inclusivo (los SKU no se
// reutilizan). Create/Update deben traducir la violación del índice único
// (sku, tenant_id) a domain.ErrSKUConflict.
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByID devuelve la fila incluso si está soft-deleted (ruta admin/auditoría).
	GetByID(id string) (*entity.Product, error)
	// GetActiveByIDAndTenant devuelve sólo productos no eliminados del tenant.
	GetActiveByIDAndTenant(id, tenantID string) (*entity.Product, error)
	GetByTenantAndSKU(tenantID, sku string) (*entity.Product, error)
	ListActiveBySeller(sellerID, tenantID string) ([]*entity.Product, error)
	// Search devuelve la página pedida y el total de filas que matchean.
	Search(tenantID string, filter ProductSearchFilter) ([]*entity.Product, int64, error)
	CountActiveByCategory(tenantID, categoryID string) (int64, error)
	Update(product *entity.Product) error
}
