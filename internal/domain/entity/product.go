package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de un producto. El estado es ortogonal al soft delete:
// un producto puede transitar libremente entre estados vía Update, pero
// una vez marcado Deleted no hay camino de vuelta.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusDraft    = "DRAFT"
)

// ValidStatus indica si s es un estado reconocido.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusDraft
}

// Product representa un producto del catálogo, con alcance de tenant y seller.
// SKU es único por tenant (incluyendo filas soft-deleted). SellerID y TenantID
// son inmutables después de la creación.
type Product struct {
	ID          string
	TenantID    string
	SellerID    string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string // código ISO 4217 de 3 letras
	CategoryID  string // vacío si no tiene categoría
	Images      string // lista de URLs serializada como JSON
	Status      string
	Deleted     bool
	DeletedAt   *time.Time // se establece sólo cuando Deleted es true
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
