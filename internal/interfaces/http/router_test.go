package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
)

const testDefaultTenant = "marketplace-default"

// buildAPI monta la API completa sobre los adaptadores en memoria.
func buildAPI() *fiber.App {
	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()
	tx := memory.NewTxRunner(categories, products)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:      usecase.NewCategoryUseCase(categories, products, tx),
		ProductSvc:      usecase.NewProductService(products, tx, memory.NewPublisher()),
		JWTSecret:       testJWTSecret,
		DefaultTenantID: testDefaultTenant,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, payload interface{}) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización de rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MutacionesSinToken_Retornan401(t *testing.T) {
	app := buildAPI()

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/categories/"},
		{http.MethodPut, "/api/categories/algun-id"},
		{http.MethodDelete, "/api/categories/algun-id"},
		{http.MethodPost, "/api/products/"},
		{http.MethodPut, "/api/products/algun-id"},
		{http.MethodDelete, "/api/products/algun-id"},
		{http.MethodGet, "/api/products/my"},
	}
	for _, tc := range cases {
		resp := doJSON(t, app, tc.method, tc.path, "", fiber.Map{})
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			"%s %s debe exigir token", tc.method, tc.path)
	}
}

func TestAPI_CrearCategoriaConRolBuyer_Retorna403(t *testing.T) {
	app := buildAPI()
	token := tokenFor(t, "tenant-x", "BUYER")

	resp := doJSON(t, app, http.MethodPost, "/api/categories/", token, dto.CreateCategoryRequest{Name: "Electrónica"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: categorías y productos vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCatalogoCompleto(t *testing.T) {
	app := buildAPI()
	token := tokenFor(t, "tenant-x", "SELLER")

	// Crear categoría raíz e hija
	resp := doJSON(t, app, http.MethodPost, "/api/categories/", token, dto.CreateCategoryRequest{Name: "Electrónica"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var root dto.CategoryResponse
	decodeJSON(t, resp, &root)

	resp = doJSON(t, app, http.MethodPost, "/api/categories/", token, dto.CreateCategoryRequest{
		Name:     "Celulares",
		ParentID: root.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var child dto.CategoryResponse
	decodeJSON(t, resp, &child)

	// Crear producto en la categoría hija
	resp = doJSON(t, app, http.MethodPost, "/api/products/", token, fiber.Map{
		"name":        "Teléfono gama alta",
		"sku":         "PHONE-001",
		"price":       "2499900.00",
		"currency":    "COP",
		"category_id": child.ID,
		"images":      []string{"https://img/1.jpg"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product dto.ProductResponse
	decodeJSON(t, resp, &product)
	assert.Equal(t, "tenant-x", product.TenantID)
	assert.Equal(t, testUserID, product.SellerID)

	// El árbol público del tenant (por query param, sin token) ve la jerarquía
	resp = doJSON(t, app, http.MethodGet, "/api/categories/tree?tenant_id=tenant-x", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tree []dto.CategoryTreeResponse
	decodeJSON(t, resp, &tree)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, child.ID, tree[0].Children[0].ID)

	// Búsqueda pública por texto
	resp = doJSON(t, app, http.MethodGet, "/api/products/?tenant_id=tenant-x&q=gama", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.ProductSearchResponse
	decodeJSON(t, resp, &page)
	require.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "PHONE-001", page.Content[0].SKU)

	// Listado del seller autenticado
	resp = doJSON(t, app, http.MethodGet, "/api/products/my", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []dto.ProductResponse
	decodeJSON(t, resp, &mine)
	require.Len(t, mine, 1)

	// Soft delete y verificación de desaparición pública
	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+product.ID, token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+product.ID+"?tenant_id=tenant-x", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_SKUDuplicado_Retorna409(t *testing.T) {
	app := buildAPI()
	token := tokenFor(t, "tenant-x", "SELLER")

	payload := fiber.Map{"name": "Producto", "sku": "DUP-001", "price": "100.00", "currency": "COP"}
	resp := doJSON(t, app, http.MethodPost, "/api/products/", token, payload)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/products/", token, payload)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "SKU_CONFLICT", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de tenant en rutas públicas
// ──────────────────────────────────────────────────────────────────────────────

// Sin query param ni token, las lecturas caen al tenant por defecto.
func TestAPI_LecturaPublica_UsaTenantPorDefecto(t *testing.T) {
	app := buildAPI()
	token := tokenFor(t, testDefaultTenant, "SELLER")

	resp := doJSON(t, app, http.MethodPost, "/api/categories/", token, dto.CreateCategoryRequest{Name: "Hogar"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/categories/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.CategoryResponse
	decodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Hogar", list[0].Name)
}

// El query param tiene prioridad sobre el tenant del token.
func TestAPI_QueryParamPisaTenantDelToken(t *testing.T) {
	app := buildAPI()
	tokenA := tokenFor(t, "tenant-a", "SELLER")

	resp := doJSON(t, app, http.MethodPost, "/api/categories/", tokenA, dto.CreateCategoryRequest{Name: "Solo en A"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Autenticado como tenant-a pero pidiendo tenant-b: no debe ver nada.
	resp = doJSON(t, app, http.MethodGet, "/api/categories/?tenant_id=tenant-b", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.CategoryResponse
	decodeJSON(t, resp, &list)
	assert.Empty(t, list)
}

// Sin tenant resoluble (default vacío) la lectura pública es 400.
func TestAPI_SinTenantResoluble_Retorna400(t *testing.T) {
	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()
	tx := memory.NewTxRunner(categories, products)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:      usecase.NewCategoryUseCase(categories, products, tx),
		ProductSvc:      usecase.NewProductService(products, tx, nil),
		JWTSecret:       testJWTSecret,
		DefaultTenantID: "", // sin default configurado
	})

	resp := doJSON(t, app, http.MethodGet, "/api/categories/", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "MISSING_TENANT", body.Code)
}
