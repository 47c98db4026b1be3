package memory

import (
	"context"
	"errors"
	"testing"
)

func TestStorage_PutGetURL(t *testing.T) {
	s := New()
	ctx := context.Background()

	data := []byte("hola")
	if err := s.Put(ctx, "documents/u1/identification/a.png", "image/png", data); err != nil {
		t.Fatalf("put: %v", err)
	}
	data[0] = 'X' // el storage guarda una copia

	o, ok := s.Get("documents/u1/identification/a.png")
	if !ok || string(o.Data) != "hola" || o.ContentType != "image/png" {
		t.Fatalf("unexpected object %+v ok=%v", o, ok)
	}

	u, err := s.URL(ctx, "documents/u1/identification/a.png")
	if err != nil || u != "memory:///documents/u1/identification/a.png" {
		t.Fatalf("unexpected url %q err=%v", u, err)
	}

	if _, err := s.URL(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Put(ctx, "", "text/plain", nil); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
