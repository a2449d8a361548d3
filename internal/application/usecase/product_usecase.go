package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/event"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// ProductService ciclo de vida de productos: unicidad de SKU por tenant,
// autorización por propiedad, soft delete y emisión del evento de creación.
// Es interfaz para permitir el decorador de caché Redis.
type ProductService interface {
	Create(ctx context.Context, actor domain.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(productID, tenantID string) (*dto.ProductResponse, error)
	Search(tenantID string, in dto.SearchProductsRequest) (*dto.ProductSearchResponse, error)
	ListBySeller(sellerID, tenantID string) ([]dto.ProductResponse, error)
	Update(ctx context.Context, actor domain.Actor, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, actor domain.Actor, productID string) error
	CanAccess(actorID, sellerID string, roles []string) bool
}

type productService struct {
	products  repository.ProductRepository
	tx        TxRunner
	publisher EventPublisher // nil = publicación deshabilitada
}

// NewProductService construye el caso de uso. publisher puede ser nil
// (ej. entorno local sin broker); en ese caso no se emiten eventos.
func NewProductService(products repository.ProductRepository, tx TxRunner, publisher EventPublisher) ProductService {
	return &productService{products: products, tx: tx, publisher: publisher}
}

// CanAccess indica si el actor puede modificar un producto: es el dueño
// (actorID == sellerID) o tiene rol ADMIN.
func (s *productService) CanAccess(actorID, sellerID string, roles []string) bool {
	if actorID == sellerID {
		return true
	}
	return domain.Actor{Roles: roles}.IsAdmin()
}

// Create crea un producto para el actor (seller = actor) dentro de su tenant.
// El chequeo de SKU corre contra TODAS las filas, incluidas las soft-deleted.
// Tras el commit publica ProductCreated; un fallo de publicación se loggea
// y se traga, nunca revierte la creación.
func (s *productService) Create(ctx context.Context, actor domain.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.CanManageCatalog() {
		return nil, domain.ErrUnauthorized
	}
	if err := validateProductFields(in.Name, in.SKU, in.Description, in.Price, in.Currency); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	imagesJSON, err := serializeImages(in.Images)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    actor.TenantID,
		SellerID:    actor.UserID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		CategoryID:  in.CategoryID,
		Images:      imagesJSON,
		Status:      status,
		Deleted:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tx.Run(ctx, func(_ repository.CategoryRepository, products repository.ProductRepository) error {
		existing, err := products.GetByTenantAndSKU(actor.TenantID, in.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrSKUConflict
		}
		// El índice único (sku, tenant_id) cubre la carrera entre el pre-check
		// y el insert; el repositorio traduce la violación a ErrSKUConflict.
		return products.Create(product)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", product.ID).Str("seller_id", actor.UserID).Str("tenant_id", actor.TenantID).Msg("producto creado")

	s.publishCreated(ctx, product)
	return toProductResponse(product), nil
}

// publishCreated emite el evento post-commit, best-effort (at-most-once).
func (s *productService) publishCreated(ctx context.Context, p *entity.Product) {
	if s.publisher == nil {
		log.Debug().Str("product_id", p.ID).Msg("publicación de eventos deshabilitada")
		return
	}
	ev := event.NewProductCreated(p.ID, p.SKU, p.TenantID, p.SellerID)
	if err := s.publisher.Publish(ctx, event.TopicProductCreated, p.ID, ev); err != nil {
		log.Error().Err(err).Str("product_id", p.ID).Msg("fallo publicando ProductCreated")
		return
	}
	log.Info().Str("product_id", p.ID).Msg("evento ProductCreated publicado")
}

// GetByID obtiene un producto no eliminado del tenant. Las filas soft-deleted
// responden ErrNotFound; la ruta de auditoría usa el repositorio directamente.
func (s *productService) GetByID(productID, tenantID string) (*dto.ProductResponse, error) {
	product, err := s.products.GetActiveByIDAndTenant(productID, tenantID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Search busca productos no eliminados del tenant con filtros opcionales
// AND-combinados y paginación explícita (page basado en 0).
func (s *productService) Search(tenantID string, in dto.SearchProductsRequest) (*dto.ProductSearchResponse, error) {
	page := in.Page
	if page < 0 {
		page = 0
	}
	size := in.Size
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	filter := repository.ProductSearchFilter{
		Query:      in.Query,
		CategoryID: in.CategoryID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Page:       page,
		Size:       size,
	}
	items, total, err := s.products.Search(tenantID, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	content := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		content = append(content, *toProductResponse(p))
	}
	return &dto.ProductSearchResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}, nil
}

// ListBySeller lista los productos activos de un seller dentro del tenant.
func (s *productService) ListBySeller(sellerID, tenantID string) ([]dto.ProductResponse, error) {
	items, err := s.products.ListActiveBySeller(sellerID, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto existente no eliminado del tenant.
// Sólo el dueño o un ADMIN pueden modificar. Name, SKU, Price y Currency se
// sobreescriben siempre; Description, CategoryID y Status sólo si vienen en
// el request, e Images sólo con una lista no vacía. SellerID y TenantID nunca cambian.
func (s *productService) Update(ctx context.Context, actor domain.Actor, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductFields(in.Name, in.SKU, deref(in.Description), in.Price, in.Currency); err != nil {
		return nil, err
	}
	if in.Status != nil && !entity.ValidStatus(*in.Status) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := s.tx.Run(ctx, func(_ repository.CategoryRepository, products repository.ProductRepository) error {
		product, err := products.GetActiveByIDAndTenant(productID, actor.TenantID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !s.CanAccess(actor.UserID, product.SellerID, actor.Roles) {
			return domain.ErrUnauthorized
		}

		if product.SKU != in.SKU {
			existing, err := products.GetByTenantAndSKU(actor.TenantID, in.SKU)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrSKUConflict
			}
		}

		// Images sólo se sobreescriben con una lista no vacía: omitirlas o
		// mandar [] conserva las almacenadas.
		if len(in.Images) > 0 {
			imagesJSON, err := serializeImages(in.Images)
			if err != nil {
				return err
			}
			product.Images = imagesJSON
		}
		product.Name = in.Name
		product.SKU = in.SKU
		product.Price = in.Price
		product.Currency = in.Currency
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.CategoryID != nil {
			product.CategoryID = *in.CategoryID
		}
		if in.Status != nil {
			product.Status = *in.Status
		}
		product.UpdatedAt = time.Now()
		if err := products.Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", productID).Str("tenant_id", actor.TenantID).Msg("producto actualizado")
	return toProductResponse(updated), nil
}

// Delete marca el producto como eliminado (soft delete, estado terminal).
// No existe operación de un-delete: la fila queda inmutable y fuera de
// todas las lecturas activas.
func (s *productService) Delete(ctx context.Context, actor domain.Actor, productID string) error {
	err := s.tx.Run(ctx, func(_ repository.CategoryRepository, products repository.ProductRepository) error {
		product, err := products.GetActiveByIDAndTenant(productID, actor.TenantID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !s.CanAccess(actor.UserID, product.SellerID, actor.Roles) {
			return domain.ErrUnauthorized
		}
		now := time.Now()
		product.Deleted = true
		product.DeletedAt = &now
		product.UpdatedAt = now
		return products.Update(product)
	})
	if err != nil {
		return err
	}
	log.Info().Str("product_id", productID).Str("tenant_id", actor.TenantID).Msg("producto eliminado (soft delete)")
	return nil
}

// validateProductFields valida las restricciones de campos del producto:
// name ≤255, sku ≤100, description ≤5000, price > 0 con hasta 15 dígitos
// enteros y 2 decimales, currency de 3 letras.
func validateProductFields(name, sku, description string, price decimal.Decimal, currency string) error {
	if strings.TrimSpace(name) == "" || len(name) > 255 {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(sku) == "" || len(sku) > 100 {
		return domain.ErrInvalidInput
	}
	if len(description) > 5000 {
		return domain.ErrInvalidInput
	}
	if !price.IsPositive() {
		return domain.ErrInvalidInput
	}
	if price.Exponent() < -2 {
		return domain.ErrInvalidInput
	}
	if len(price.Truncate(0).String()) > 15 {
		return domain.ErrInvalidInput
	}
	if len(currency) != 3 {
		return domain.ErrInvalidInput
	}
	return nil
}

// serializeImages serializa la lista de URLs a JSON para almacenarla.
// URLs en blanco son entrada inválida; lista vacía/nil serializa a "".
func serializeImages(images []string) (string, error) {
	if len(images) == 0 {
		return "", nil
	}
	for _, url := range images {
		if strings.TrimSpace(url) == "" {
			return "", domain.ErrInvalidInput
		}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return "", domain.ErrInvalidInput
	}
	return string(raw), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		SellerID:    p.SellerID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		CategoryID:  p.CategoryID,
		Images:      dto.ParseImages(p.Images),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
