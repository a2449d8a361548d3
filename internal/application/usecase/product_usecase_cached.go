package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// cachedProductService decora ProductService con un caché read-through en
// Redis para las lecturas por ID. Las mutaciones invalidan la clave; el resto
// de operaciones pasan directo. Un Redis caído degrada a lecturas sin caché,
// nunca a error.
type cachedProductService struct {
	next        ProductService
	redisClient *redis.Client
	cacheTTL    time.Duration
}

// NewCachedProductService envuelve next con caché Redis.
func NewCachedProductService(next ProductService, redisClient *redis.Client) ProductService {
	return &cachedProductService{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    time.Minute * 10,
	}
}

func productCacheKey(tenantID, productID string) string {
	return fmt.Sprintf("product:%s:%s", tenantID, productID)
}

func (s *cachedProductService) GetByID(productID, tenantID string) (*dto.ProductResponse, error) {
	ctx := context.Background()
	key := productCacheKey(tenantID, productID)

	val, err := s.redisClient.Get(ctx, key).Result()
	if err == nil {
		var cached dto.ProductResponse
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.next.GetByID(productID, tenantID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(product); err == nil {
		s.redisClient.Set(ctx, key, data, s.cacheTTL)
	}
	return product, nil
}

func (s *cachedProductService) Update(ctx context.Context, actor domain.Actor, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	out, err := s.next.Update(ctx, actor, productID, in)
	if err != nil {
		return nil, err
	}
	s.redisClient.Del(ctx, productCacheKey(actor.TenantID, productID))
	return out, nil
}

func (s *cachedProductService) Delete(ctx context.Context, actor domain.Actor, productID string) error {
	if err := s.next.Delete(ctx, actor, productID); err != nil {
		return err
	}
	s.redisClient.Del(ctx, productCacheKey(actor.TenantID, productID))
	return nil
}

func (s *cachedProductService) Create(ctx context.Context, actor domain.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	return s.next.Create(ctx, actor, in)
}

func (s *cachedProductService) Search(tenantID string, in dto.SearchProductsRequest) (*dto.ProductSearchResponse, error) {
	return s.next.Search(tenantID, in)
}

func (s *cachedProductService) ListBySeller(sellerID, tenantID string) ([]dto.ProductResponse, error) {
	return s.next.ListBySeller(sellerID, tenantID)
}

func (s *cachedProductService) CanAccess(actorID, sellerID string, roles []string) bool {
	return s.next.CanAccess(actorID, sellerID, roles)
}
