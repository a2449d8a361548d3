package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	CategoryID  string          `json:"category_id"`
	Images      []string        `json:"images"`
	Status      string          `json:"status"` // ACTIVE | INACTIVE | DRAFT; vacío = ACTIVE
}

// UpdateProductRequest entrada para actualizar un producto.
// Name, SKU, Price y Currency se sobreescriben siempre; Description,
// CategoryID y Status sólo cuando vienen en el request (no nil); Images
// sólo cuando la lista viene no vacía (omitida o [] conserva las actuales).
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	Description *string         `json:"description" validate:"omitempty,max=5000"`
	CategoryID  *string         `json:"category_id"`
	Status      *string         `json:"status"`
	Images      []string        `json:"images"`
}

// SearchProductsRequest filtros de búsqueda; todos opcionales, combinados con AND.
type SearchProductsRequest struct {
	Query      string           `query:"q"`
	CategoryID string           `query:"category_id"`
	MinPrice   *decimal.Decimal `query:"min_price"`
	MaxPrice   *decimal.Decimal `query:"max_price"`
	Page       int              `query:"page"`
	Size       int              `query:"size"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	SellerID    string          `json:"seller_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	CategoryID  string          `json:"category_id,omitempty"`
	Images      []string        `json:"images"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductSearchResponse página de resultados con metadatos de paginación.
type ProductSearchResponse struct {
	Content       []ProductResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
}

// ParseImages deserializa la lista de URLs almacenada como JSON.
// Una cadena vacía o un JSON malformado producen lista vacía, nunca error:
// la lectura de un producto no debe fallar por imágenes corruptas.
func ParseImages(imagesJSON string) []string {
	if imagesJSON == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(imagesJSON), &urls); err != nil {
		return []string{}
	}
	if urls == nil {
		return []string{}
	}
	return urls
}
