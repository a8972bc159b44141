// Package storage implementa el puerto ObjectStorage sobre Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jhoicas/tradeportal-api/pkg/config"
)

// GCSStorage adaptador de Google Cloud Storage. El cliente se crea una vez y
// se comparte; los objetos se suben con ACL de lectura pública.
type GCSStorage struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

// NewGCSStorage construye el adaptador. Con STORAGE_CREDENTIALS_JSON definido
// se usan esas credenciales explícitas; si no, Application Default Credentials
// (service account de Cloud Run o GOOGLE_APPLICATION_CREDENTIALS).
func NewGCSStorage(ctx context.Context, cfg config.StorageConfig) (*GCSStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket no configurado")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: crear cliente GCS: %w", err)
	}

	if _, err := client.Bucket(cfg.Bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: bucket %q inaccesible: %w", cfg.Bucket, err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &GCSStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload sube el objeto y devuelve su URL pública.
func (s *GCSStorage) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}
	if _, err := wc.Write(data); err != nil {
		return "", fmt.Errorf("storage: escribir objeto %s: %w", objectName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar writer de %s: %w", objectName, err)
	}
	return s.baseURL + "/" + objectName, nil
}

// DeleteByURL elimina el objeto al que apunta una URL devuelta por Upload.
// Borrar un objeto que ya no existe no es error.
func (s *GCSStorage) DeleteByURL(ctx context.Context, url string) error {
	objectName, ok := s.objectKey(url)
	if !ok {
		return fmt.Errorf("storage: la URL %q no pertenece al bucket %s", url, s.bucket)
	}
	err := s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
	if err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("storage: borrar objeto %s: %w", objectName, err)
	}
	return nil
}

// Ping verifica conectividad con el bucket (health check).
func (s *GCSStorage) Ping(ctx context.Context) error {
	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("storage: bucket %q inaccesible: %w", s.bucket, err)
	}
	return nil
}

// Close libera el cliente GCS.
func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) objectKey(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}
