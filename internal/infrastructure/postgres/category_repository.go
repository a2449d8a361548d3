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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). La tabla categories tiene índice único
// (name, tenant_id) y FK autorreferente en parent_id.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva. Traduce la violación del índice único
// (name, tenant_id) a domain.ErrNameConflict.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, tenant_id, parent_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.TenantID, nullableString(category.ParentID),
		category.Name, category.Description, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameConflict
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByIDAndTenant obtiene una categoría por ID dentro del tenant.
func (r *CategoryRepo) GetByIDAndTenant(id, tenantID string) (*entity.Category, error) {
	query := `
		SELECT id, tenant_id, parent_id, name, description, created_at, updated_at
		FROM categories WHERE id = $1 AND tenant_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, tenantID), "get category")
}

// GetByNameAndTenant obtiene una categoría por nombre dentro del tenant
// (chequeo de unicidad).
func (r *CategoryRepo) GetByNameAndTenant(name, tenantID string) (*entity.Category, error) {
	query := `
		SELECT id, tenant_id, parent_id, name, description, created_at, updated_at
		FROM categories WHERE name = $1 AND tenant_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, tenantID), "get category by name")
}

// ListByTenant lista todas las categorías del tenant (un solo fetch; el árbol
// se arma en memoria en el caso de uso).
func (r *CategoryRepo) ListByTenant(tenantID string) ([]*entity.Category, error) {
	query := `
		SELECT id, tenant_id, parent_id, name, description, created_at, updated_at
		FROM categories WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByParent lista las hijas directas de una categoría.
func (r *CategoryRepo) ListByParent(parentID, tenantID string) ([]*entity.Category, error) {
	query := `
		SELECT id, tenant_id, parent_id, name, description, created_at, updated_at
		FROM categories WHERE parent_id = $1 AND tenant_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, parentID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories by parent: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Update actualiza nombre, descripción y padre. Traduce la violación del
// índice único a domain.ErrNameConflict (carrera con otro update/insert).
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, parent_id = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description,
		nullableString(category.ParentID), category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameConflict
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina la fila (hard delete). Las guardas de referencias viven en
// el caso de uso; la FK de products tiene ON DELETE SET NULL como respaldo.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row, op string) (*entity.Category, error) {
	var c entity.Category
	var parentID *string
	err := row.Scan(&c.ID, &c.TenantID, &parentID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if parentID != nil {
		c.ParentID = *parentID
	}
	return &c, nil
}

func (r *CategoryRepo) scanAll(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID *string
		if err := rows.Scan(&c.ID, &c.TenantID, &parentID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if parentID != nil {
			c.ParentID = *parentID
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
