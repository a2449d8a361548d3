package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// errMissingTenant se responde cuando una ruta pública no puede resolver
// el tenant por ninguna vía.
var errMissingTenant = domain.ErrBadRequest

// respondDomainError mapea los errores de dominio a códigos HTTP estables.
// Cualquier error no tipado es un 500 genérico sin detalles internos.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permisos para esta operación"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrNameConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NAME_CONFLICT", Message: "ya existe una categoría con ese nombre"})
	case errors.Is(err, domain.ErrSKUConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SKU_CONFLICT", Message: "el SKU ya existe en este tenant"})
	case errors.Is(err, domain.ErrInvalidParent):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARENT", Message: "una categoría no puede ser su propio padre"})
	case errors.Is(err, domain.ErrCategoryHasProducts):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CATEGORY_HAS_PRODUCTS", Message: "la categoría tiene productos asociados"})
	case errors.Is(err, domain.ErrCategoryHasChildren):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CATEGORY_HAS_CHILDREN", Message: "la categoría tiene subcategorías"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrBadRequest):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TENANT", Message: "tenant_id es requerido (query param o token)"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// resolveTenantID resuelve el tenant para rutas públicas con prioridad:
// query param tenant_id > claim del token > tenant por defecto del
// marketplace. Vacío si ninguno aplica (el handler responde ErrBadRequest).
func resolveTenantID(c *fiber.Ctx, defaultTenantID string) string {
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		return tenantID
	}
	if tenantID, ok := c.Locals(LocalTenantID).(string); ok && tenantID != "" {
		return tenantID
	}
	return defaultTenantID
}
