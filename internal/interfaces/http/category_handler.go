package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP para categorías.
// Las lecturas son públicas (tenant por query param o default); las
// mutaciones requieren token y rol SELLER/ADMIN (validado en el caso de uso).
type CategoryHandler struct {
	uc              *usecase.CategoryUseCase
	defaultTenantID string
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, defaultTenantID string) *CategoryHandler {
	return &CategoryHandler{uc: uc, defaultTenantID: defaultTenantID}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías del tenant
// @Tags         categories
// @Produce      json
// @Param        tenant_id  query  string  false  "Tenant (si no hay token)"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	tenantID := resolveTenantID(c, h.defaultTenantID)
	if tenantID == "" {
		return respondDomainError(c, errMissingTenant)
	}
	out, err := h.uc.ListAll(tenantID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Tree godoc
// @Summary      Árbol de categorías (raíces con hijas recursivas)
// @Tags         categories
// @Produce      json
// @Param        tenant_id  query  string  false  "Tenant (si no hay token)"
// @Success      200  {array}  dto.CategoryTreeResponse
// @Router       /api/categories/tree [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	tenantID := resolveTenantID(c, h.defaultTenantID)
	if tenantID == "" {
		return respondDomainError(c, errMissingTenant)
	}
	out, err := h.uc.GetTree(tenantID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	tenantID := resolveTenantID(c, h.defaultTenantID)
	if tenantID == "" {
		return respondDomainError(c, errMissingTenant)
	}
	out, err := h.uc.GetByID(c.Params("id"), tenantID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Children godoc
// @Summary      Hijas directas de una categoría
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría padre"
// @Success      200  {array}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/children [get]
func (h *CategoryHandler) Children(c *fiber.Ctx) error {
	tenantID := resolveTenantID(c, h.defaultTenantID)
	if tenantID == "" {
		return respondDomainError(c, errMissingTenant)
	}
	out, err := h.uc.GetChildren(c.Params("id"), tenantID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría (sin productos ni subcategorías)
// @Tags         categories
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
