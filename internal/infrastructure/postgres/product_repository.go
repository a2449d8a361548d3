package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, seller_id, sku, name, description, price, currency,
	category_id, images, status, deleted, deleted_at, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). La tabla products tiene índice único
// (sku, tenant_id) y FK category_id -> categories ON DELETE SET NULL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. Traduce la violación del índice único
// (sku, tenant_id) a domain.ErrSKUConflict.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.TenantID, product.SellerID, product.SKU, product.Name,
		product.Description, product.Price, product.Currency, nullableString(product.CategoryID),
		product.Images, product.Status, product.Deleted, product.DeletedAt,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, incluso soft-deleted (auditoría).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetActiveByIDAndTenant obtiene un producto no eliminado del tenant.
func (r *ProductRepo) GetActiveByIDAndTenant(id, tenantID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE id = $1 AND tenant_id = $2 AND deleted = false`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, tenantID), "get active product")
}

// GetByTenantAndSKU obtiene un producto por SKU dentro del tenant.
// Deliberadamente NO filtra por deleted: los SKU no se reutilizan.
func (r *ProductRepo) GetByTenantAndSKU(tenantID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE tenant_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, tenantID, sku), "get product by sku")
}

// ListActiveBySeller lista los productos activos de un seller en el tenant.
func (r *ProductRepo) ListActiveBySeller(sellerID, tenantID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE seller_id = $1 AND tenant_id = $2 AND deleted = false
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, sellerID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list products by seller: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Search busca productos no eliminados del tenant con filtros opcionales
// AND-combinados; devuelve la página pedida y el total de coincidencias.
func (r *ProductRepo) Search(tenantID string, f repository.ProductSearchFilter) ([]*entity.Product, int64, error) {
	where := ` FROM products WHERE tenant_id = $1 AND deleted = false`
	args := []any{tenantID}

	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		where += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		where += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.Size, f.Page*f.Size)
	query := `SELECT ` + productColumns + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	list, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// CountActiveByCategory cuenta los productos no eliminados que referencian
// la categoría (guarda de borrado de categorías).
func (r *ProductRepo) CountActiveByCategory(tenantID, categoryID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE tenant_id = $1 AND category_id = $2 AND deleted = false`,
		tenantID, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// Update sobreescribe los campos mutables del producto (incluye el soft
// delete: deleted y deleted_at). SellerID y TenantID nunca se tocan.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, price = $5, currency = $6,
			category_id = $7, images = $8, status = $9, deleted = $10, deleted_at = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Price,
		product.Currency, nullableString(product.CategoryID), product.Images, product.Status,
		product.Deleted, product.DeletedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUConflict
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(
		&p.ID, &p.TenantID, &p.SellerID, &p.SKU, &p.Name, &p.Description,
		&p.Price, &p.Currency, &categoryID, &p.Images, &p.Status,
		&p.Deleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}
