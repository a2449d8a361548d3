package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// RouterDeps agrupa las dependencias necesarias para montar las rutas.
type RouterDeps struct {
	CategoryUC      *usecase.CategoryUseCase
	ProductSvc      usecase.ProductService
	JWTSecret       string
	DefaultTenantID string
}

// Router monta la API bajo /api. Las lecturas de catálogo usan auth
// opcional (el tenant puede venir por query param o por token); las
// mutaciones exigen token válido con tenant.
func Router(app *fiber.App, deps RouterDeps) {
	categories := NewCategoryHandler(deps.CategoryUC, deps.DefaultTenantID)
	products := NewProductHandler(deps.ProductSvc, deps.DefaultTenantID)

	optional := OptionalAuthMiddleware(deps.JWTSecret)
	required := AuthMiddleware(deps.JWTSecret)

	api := app.Group("/api")

	cat := api.Group("/categories")
	cat.Get("/", optional, categories.List)
	cat.Get("/tree", optional, categories.Tree)
	cat.Get("/:id", optional, categories.GetByID)
	cat.Get("/:id/children", optional, categories.Children)
	cat.Post("/", required, categories.Create)
	cat.Put("/:id", required, categories.Update)
	cat.Delete("/:id", required, categories.Delete)

	prod := api.Group("/products")
	prod.Get("/", optional, products.Search)
	prod.Get("/search", optional, products.Search)
	prod.Get("/my", required, products.My)
	prod.Get("/:id", optional, products.GetByID)
	prod.Post("/", required, products.Create)
	prod.Put("/:id", required, products.Update)
	prod.Delete("/:id", required, products.Delete)
}
