package files

import "context"

// Storage guarda documentos y certificados. URL devuelve un link de descarga (firmado si aplica).
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	URL(ctx context.Context, key string) (string, error)
}
