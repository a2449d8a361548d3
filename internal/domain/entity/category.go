package entity

import "time"

// Category representa una categoría jerárquica del catálogo.
// Name es único por tenant; ParentID vacío indica categoría raíz.
// TenantID es inmutable después de la creación.
type Category struct {
	ID          string
	TenantID    string
	ParentID    string // vacío si es raíz; debe resolver dentro del mismo tenant
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
