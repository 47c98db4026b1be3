package plansfeatures

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/ports/capabilities"
)

var (
	ErrPlansNotConfigured = errors.New("plans-features client not configured")
	ErrPlansUnauthorized  = errors.New("plans-features unauthorized")
	ErrPlansUpstream      = errors.New("plans-features upstream error")
)

const defaultCacheTTL = time.Minute

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration

	// CacheTTL: cuánto se reutilizan las capabilities de un usuario. <= 0 => 1 minuto.
	CacheTTL time.Duration
}

// Resolver consulta plans-features y cachea por usuario.
// Implementa capabilities.CapabilitiesResolver.
type Resolver struct {
	http *httpclient.Client
	ttl  time.Duration
	now  func() time.Time

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	caps    map[string]bool
	expires time.Time
}

var _ capabilities.CapabilitiesResolver = (*Resolver)(nil)

func NewResolver(cfg Config) (*Resolver, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	apiKey := strings.TrimSpace(cfg.APIKey)
	if baseURL == "" || apiKey == "" {
		return nil, ErrPlansNotConfigured
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("plans-features: %w", err)
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Resolver{
		http:  hc.WithHeader(h, apiKey),
		ttl:   ttl,
		now:   time.Now,
		cache: map[string]cached{},
	}, nil
}

type capabilitiesResponse struct {
	// {"adoptions:admin": true}
	Capabilities map[string]bool `json:"capabilities"`
}

// Has responde si userID tiene la capability.
func (r *Resolver) Has(ctx context.Context, userID, capability string) (bool, error) {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return false, errors.New("capability required")
	}
	caps, err := r.Resolve(ctx, userID)
	if err != nil {
		return false, err
	}
	return caps[capability], nil
}

// Resolve devuelve el mapa completo de capabilities de userID.
func (r *Resolver) Resolve(ctx context.Context, userID string) (map[string]bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("userID required")
	}

	now := r.now()
	r.mu.Lock()
	c, ok := r.cache[userID]
	r.mu.Unlock()
	if ok && now.Before(c.expires) {
		return c.caps, nil
	}

	var out capabilitiesResponse
	path := "/v1/capabilities?user_id=" + url.QueryEscape(userID)
	if err := r.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, ErrPlansUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", ErrPlansUpstream, err)
	}
	if out.Capabilities == nil {
		out.Capabilities = map[string]bool{}
	}

	r.mu.Lock()
	r.cache[userID] = cached{caps: out.Capabilities, expires: now.Add(r.ttl)}
	r.mu.Unlock()
	return out.Capabilities, nil
}
