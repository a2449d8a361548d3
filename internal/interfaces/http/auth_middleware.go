package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/pkg/jwt"
)

// Locals keys para el contexto de autorización en Fiber.
const (
	LocalUserID   = "user_id"
	LocalTenantID = "tenant_id"
	LocalRoles    = "roles"
)

// AuthMiddleware valida el Bearer Token JWT y carga UserID, TenantID y Roles
// en c.Locals. Los claims del token son la fuente de verdad; headers tipo
// X-User-Id del gateway no se confían.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, tenantID, roles, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TENANT", Message: "el token no incluye tenant_id"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalTenantID, tenantID)
		c.Locals(LocalRoles, roles)
		return c.Next()
	}
}

// OptionalAuthMiddleware intenta cargar el contexto del token si viene, pero
// nunca rechaza: las rutas públicas resuelven tenant por query param o por
// el tenant por defecto del marketplace.
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if userID, tenantID, roles, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1])); err == nil {
				c.Locals(LocalUserID, userID)
				c.Locals(LocalTenantID, tenantID)
				c.Locals(LocalRoles, roles)
			}
		}
		return c.Next()
	}
}

// GetActor arma el contexto de autorización desde c.Locals (después del
// middleware de auth).
func GetActor(c *fiber.Ctx) domain.Actor {
	actor := domain.Actor{}
	if v, ok := c.Locals(LocalUserID).(string); ok {
		actor.UserID = v
	}
	if v, ok := c.Locals(LocalTenantID).(string); ok {
		actor.TenantID = v
	}
	if v, ok := c.Locals(LocalRoles).([]string); ok {
		actor.Roles = v
	}
	return actor
}
