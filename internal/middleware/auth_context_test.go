package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption/internal/ports/auth"
)

type fakeVerifier struct {
	claims auth.Claims
	err    error
}

func (f fakeVerifier) Verify(_ context.Context, _ string) (auth.Claims, error) {
	return f.claims, f.err
}

type fakeCaps map[string]bool

func (f fakeCaps) Has(_ context.Context, userID, _ string) (bool, error) {
	if userID == "broken" {
		return false, errors.New("upstream down")
	}
	return f[userID], nil
}

func serve(t *testing.T, opts AuthOptions, req *http.Request) (auth.Actor, bool) {
	t.Helper()
	var (
		got auth.Actor
		ok  bool
	)
	h := AuthContext(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetActor(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext_DevHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "user-1")
	req.Header.Set("X-Debug-Role", "Admin, viewer")

	actor, ok := serve(t, AuthOptions{}, req)
	if !ok || actor.ID != "user-1" || !actor.Admin {
		t.Fatalf("unexpected actor %+v ok=%v", actor, ok)
	}

	anon, ok := serve(t, AuthOptions{}, httptest.NewRequest(http.MethodGet, "/", nil))
	if ok {
		t.Fatalf("expected no actor, got %+v", anon)
	}
}

func TestAuthContext_CapabilityGrantsAdmin(t *testing.T) {
	caps := fakeCaps{"staff-1": true}

	for _, tc := range []struct {
		user  string
		admin bool
	}{
		{"staff-1", true},
		{"user-1", false},
		{"broken", false},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Debug-User-ID", tc.user)

		actor, ok := serve(t, AuthOptions{Capabilities: caps}, req)
		if !ok || actor.Admin != tc.admin {
			t.Fatalf("%s: expected admin=%v, got %+v", tc.user, tc.admin, actor)
		}
	}
}

func TestAuthContext_BearerToken(t *testing.T) {
	v := fakeVerifier{claims: auth.Claims{UserID: "user-9", Roles: []string{"admin"}}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	actor, ok := serve(t, AuthOptions{Verifier: v}, req)
	if !ok || actor.ID != "user-9" || !actor.Admin {
		t.Fatalf("unexpected actor %+v", actor)
	}

	// Con verifier, los headers de debug se ignoran.
	dbg := httptest.NewRequest(http.MethodGet, "/", nil)
	dbg.Header.Set("X-Debug-User-ID", "user-1")
	if _, ok := serve(t, AuthOptions{Verifier: v}, dbg); ok {
		t.Fatalf("debug headers must be ignored when a verifier is configured")
	}

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("Authorization", "Bearer abc")
	if _, ok := serve(t, AuthOptions{Verifier: fakeVerifier{err: errors.New("invalid")}}, bad); ok {
		t.Fatalf("failed verification must not set claims")
	}
}
