package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=1000"`
	ParentID    string `json:"parent_id"` // vacío = categoría raíz
}

// UpdateCategoryRequest entrada para actualizar una categoría.
// Name, Description y ParentID se sobreescriben siempre (ParentID vacío
// convierte la categoría en raíz).
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=1000"`
	ParentID    string `json:"parent_id"`
}

// CategoryResponse salida de una categoría, con los IDs de sus hijas directas.
type CategoryResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	ParentID    string    `json:"parent_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ChildrenIDs []string  `json:"children_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryTreeResponse nodo del bosque de categorías: cada categoría raíz
// con sus hijas pobladas recursivamente.
type CategoryTreeResponse struct {
	ID          string                 `json:"id"`
	TenantID    string                 `json:"tenant_id"`
	ParentID    string                 `json:"parent_id,omitempty"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Children    []CategoryTreeResponse `json:"children"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
