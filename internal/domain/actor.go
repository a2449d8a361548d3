package domain

// Roles reconocidos por el catálogo. Un token sin ninguno de estos roles
// corresponde a un usuario autenticado plano (o anónimo en rutas públicas).
const (
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// Actor es el contexto de autorización entrante: tenant, usuario y roles,
// ya validados por el colaborador de autenticación (JWT en el transporte).
// Se pasa explícito a cada operación de los managers para que el dominio
// sea testeable sin stack de transporte ni auth.
type Actor struct {
	UserID   string
	TenantID string
	Roles    []string
}

// HasRole indica si el actor tiene el rol dado.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin indica si el actor tiene rol ADMIN.
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// CanManageCatalog indica si el actor puede crear/modificar catálogo
// (requiere SELLER o ADMIN).
func (a Actor) CanManageCatalog() bool {
	return a.HasRole(RoleSeller) || a.HasRole(RoleAdmin)
}
