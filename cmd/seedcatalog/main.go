// seedcatalog pobla un tenant de demostración con categorías y productos
// de ejemplo, usando los mismos repositorios que la API.
//
// Uso: go run ./cmd/seedcatalog [tenant_id]
// Por defecto usa CATALOG_DEFAULT_TENANT_ID de la configuración.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-api/pkg/config"
)

const seedSellerID = "seed-seller"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	tenantID := cfg.Catalog.DefaultTenantID
	if len(os.Args) > 1 {
		tenantID = os.Args[1]
	}
	if tenantID == "" {
		fmt.Fprintln(os.Stderr, "Falta el tenant: pase tenant_id como argumento o configure CATALOG_DEFAULT_TENANT_ID")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	err = txRunner.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		return seed(categories, products, tenantID)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar catálogo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Catálogo de demostración sembrado para el tenant %s\n", tenantID)
}

func seed(categories repository.CategoryRepository, products repository.ProductRepository, tenantID string) error {
	electronics, err := upsertCategory(categories, tenantID, "Electrónica", "Dispositivos y accesorios", "")
	if err != nil {
		return err
	}
	phones, err := upsertCategory(categories, tenantID, "Celulares", "Teléfonos inteligentes", electronics.ID)
	if err != nil {
		return err
	}
	home, err := upsertCategory(categories, tenantID, "Hogar", "Artículos para el hogar", "")
	if err != nil {
		return err
	}

	demo := []struct {
		sku, name, categoryID, price string
	}{
		{"SEED-PHONE-001", "Teléfono básico", phones.ID, "399900.00"},
		{"SEED-PHONE-002", "Teléfono gama alta", phones.ID, "2499900.00"},
		{"SEED-HOME-001", "Lámpara de escritorio", home.ID, "89900.00"},
	}
	for _, d := range demo {
		existing, err := products.GetByTenantAndSKU(tenantID, d.sku)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		price, err := decimal.NewFromString(d.price)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		product := &entity.Product{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			SellerID:    seedSellerID,
			SKU:         d.sku,
			Name:        d.name,
			Description: "Producto de demostración",
			Price:       price,
			Currency:    "COP",
			CategoryID:  d.categoryID,
			Status:      entity.StatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := products.Create(product); err != nil {
			return err
		}
	}
	return nil
}

func upsertCategory(categories repository.CategoryRepository, tenantID, name, description, parentID string) (*entity.Category, error) {
	existing, err := categories.GetByNameAndTenant(name, tenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ParentID:    parentID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}
