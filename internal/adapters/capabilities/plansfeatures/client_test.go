package plansfeatures

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption/internal/ports/capabilities"
)

func TestResolver_HasAndCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get("X-Api-Key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		caps := map[string]bool{}
		if r.URL.Query().Get("user_id") == "staff-1" {
			caps[capabilities.CapabilityAdmin] = true
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"capabilities": caps})
	}))
	defer srv.Close()

	r, err := NewResolver(Config{BaseURL: srv.URL, APIKey: "k", CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	ok, err := r.Has(ctx, "staff-1", capabilities.CapabilityAdmin)
	if err != nil || !ok {
		t.Fatalf("expected admin capability, ok=%v err=%v", ok, err)
	}
	if ok, _ := r.Has(ctx, "staff-1", capabilities.CapabilityAdmin); !ok || atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected cached answer, calls=%d", calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := r.Has(ctx, "staff-1", capabilities.CapabilityAdmin); err != nil || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected refresh after ttl, calls=%d err=%v", calls, err)
	}

	if ok, err := r.Has(ctx, "user-1", capabilities.CapabilityAdmin); err != nil || ok {
		t.Fatalf("expected no capability, ok=%v err=%v", ok, err)
	}
}

func TestResolver_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	r, _ := NewResolver(Config{BaseURL: srv.URL, APIKey: "k"})
	if _, err := r.Has(context.Background(), "user-1", capabilities.CapabilityAdmin); !errors.Is(err, ErrPlansUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := NewResolver(Config{}); !errors.Is(err, ErrPlansNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}
