package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Product
}

// NewProductRepository construye el adaptador vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{items: make(map[string]*entity.Product)}
}

// Create inserta el producto; unicidad (sku, tenant_id) como el índice de la
// DB, contra todas las filas incluidas las soft-deleted.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.TenantID == product.TenantID && p.SKU == product.SKU {
			return domain.ErrSKUConflict
		}
	}
	clone := *product
	r.items[product.ID] = &clone
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *ProductRepo) GetActiveByIDAndTenant(id, tenantID string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok || p.TenantID != tenantID || p.Deleted {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *ProductRepo) GetByTenantAndSKU(tenantID, sku string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.TenantID == tenantID && p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) ListActiveBySeller(sellerID, tenantID string) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.items {
		if p.TenantID == tenantID && p.SellerID == sellerID && !p.Deleted {
			clone := *p
			list = append(list, &clone)
		}
	}
	sortByCreatedDesc(list)
	return list, nil
}

func (r *ProductRepo) Search(tenantID string, f repository.ProductSearchFilter) ([]*entity.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []*entity.Product
	for _, p := range r.items {
		if p.TenantID != tenantID || p.Deleted {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		clone := *p
		matches = append(matches, &clone)
	}
	sortByCreatedDesc(matches)

	total := int64(len(matches))
	start := f.Page * f.Size
	if start >= len(matches) {
		return []*entity.Product{}, total, nil
	}
	end := start + f.Size
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func (r *ProductRepo) CountActiveByCategory(tenantID, categoryID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, p := range r.items {
		if p.TenantID == tenantID && p.CategoryID == categoryID && !p.Deleted {
			count++
		}
	}
	return count, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[product.ID]; !ok {
		return nil
	}
	for _, p := range r.items {
		if p.ID != product.ID && p.TenantID == product.TenantID && p.SKU == product.SKU {
			return domain.ErrSKUConflict
		}
	}
	clone := *product
	r.items[product.ID] = &clone
	return nil
}

func sortByCreatedDesc(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
