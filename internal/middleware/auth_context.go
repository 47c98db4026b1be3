package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/capabilities"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthOptions: Verifier nil => modo dev (headers X-Debug-*).
type AuthOptions struct {
	Verifier     auth.AuthVerifier
	Capabilities capabilities.CapabilitiesResolver // opcional
	Log          logger.Logger
}

// AuthContext:
// - Si hay verifier y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: X-Debug-User-ID setea el usuario y X-Debug-Role los roles (csv).
// - Si hay resolver de capabilities, adoptions:admin agrega el rol admin.
// - Si no hay claims, el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolveClaims(r, opts.Verifier, log)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if opts.Capabilities != nil && !claims.HasRole(auth.RoleAdmin) {
				has, err := opts.Capabilities.Has(r.Context(), claims.UserID, capabilities.CapabilityAdmin)
				if err != nil {
					// Sin capabilities el usuario sigue como no-admin.
					log.Debug("capabilities lookup failed", map[string]any{"user_id": claims.UserID, "err": err})
				} else if has {
					claims.Roles = append(claims.Roles, auth.RoleAdmin)
				}
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier, log logger.Logger) (auth.Claims, bool) {
	// Dev mode: permitir inyectar user sin verifier
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{UserID: uid, Roles: splitRoles(r.Header.Get("X-Debug-Role"))}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		// No cortamos aquí para no acoplar. El handler decide 401/403.
		log.Debug("token verification failed", map[string]any{"err": err})
		return auth.Claims{}, false
	}
	return claims, true
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// GetActor devuelve el actor autenticado; false si no hay usuario.
func GetActor(ctx context.Context) (auth.Actor, bool) {
	c, ok := GetClaims(ctx)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return auth.Actor{}, false
	}
	return auth.ActorFrom(c), true
}

func splitRoles(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
