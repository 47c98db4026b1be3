package memory

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"pet-adoption/internal/ports/files"
)

var ErrNotFound = errors.New("object not found")

// Object es lo que se guardó bajo una key.
type Object struct {
	ContentType string
	Data        []byte
}

// Storage guarda los archivos en memoria (modo dev y tests).
// URL devuelve un link memory://<key> que sólo sirve para inspección.
type Storage struct {
	mu      sync.RWMutex
	objects map[string]Object
}

var _ files.Storage = (*Storage)(nil)

func New() *Storage {
	return &Storage{objects: map[string]Object{}}
}

func (s *Storage) Put(ctx context.Context, key, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return errors.New("object key is required")
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{ContentType: contentType, Data: cp}
	return nil
}

func (s *Storage) URL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", ErrNotFound
	}
	return (&url.URL{Scheme: "memory", Path: "/" + key}).String(), nil
}

// Get devuelve una copia del objeto guardado.
func (s *Storage) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	if !ok {
		return Object{}, false
	}
	o.Data = append([]byte(nil), o.Data...)
	return o, true
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
