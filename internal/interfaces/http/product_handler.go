package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// ProductHandler expone el catálogo de productos. La búsqueda y el detalle
// son públicos; crear, actualizar y eliminar requieren token.
type ProductHandler struct {
	svc             usecase.ProductService
	defaultTenantID string
}

// NewProductHandler construye el handler.
func NewProductHandler(svc usecase.ProductService, defaultTenantID string) *ProductHandler {
	return &ProductHandler{svc: svc, defaultTenantID: defaultTenantID}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Search godoc
// @Summary      Buscar productos activos del tenant
// @Tags         products
// @Produce      json
// @Param        tenant_id    query  string  false  "Tenant (si no hay token)"
// @Param        q            query  string  false  "Texto en nombre o descripción"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        min_price    query  number  false  "Precio mínimo"
// @Param        max_price    query  number  false  "Precio máximo"
// @Param        page         query  int     false  "Página (desde 0)"
// @Param        size         query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.ProductSearchResponse
// @Router       /api/products [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	tenantID := resolveTenantID(c, h.defaultTenantID)
	if tenantID == "" {
		return respondDomainError(c, errMissingTenant)
	}
	var in dto.SearchProductsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de búsqueda inválidos"})
	}
	out, err := h.svc.Search(tenantID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// My godoc
// @Summary      Listar productos activos del vendedor autenticado
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/my [get]
func (h *ProductHandler) My(c *fiber.Ctx) error {
	actor := GetActor(c)
	out, err := h.svc.ListBySeller(actor.UserID, actor.TenantID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un producto activo
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	tenantID := resolveTenantID(c, h.defaultTenantID)
	if tenantID == "" {
		return respondDomainError(c, errMissingTenant)
	}
	out, err := h.svc.GetByID(c.Params("id"), tenantID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto propio (o cualquiera siendo ADMIN)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (borrado lógico)
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
