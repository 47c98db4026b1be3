package auth

import "strings"

// RoleAdmin habilita las operaciones de administración del refugio.
const RoleAdmin = "admin"

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
	Roles    []string
}

func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

// Actor es quien ejecuta una operación de dominio.
// Los servicios sólo necesitan el id y si es administrador.
type Actor struct {
	ID    string
	Admin bool
}

func ActorFrom(c Claims) Actor {
	return Actor{
		ID:    strings.TrimSpace(c.UserID),
		Admin: c.HasRole(RoleAdmin),
	}
}
