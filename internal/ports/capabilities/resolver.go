package capabilities

import "context"

// CapabilityAdmin otorga permisos de administrador aunque el token no traiga el rol.
const CapabilityAdmin = "adoptions:admin"

type CapabilitiesResolver interface {
	Has(ctx context.Context, userID string, capability string) (bool, error)
}
