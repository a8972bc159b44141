package shipping

import "context"

// ObjectStorage puerto hacia el almacenamiento de objetos donde viven los
// documentos adjuntos (BL, COA, draft survey). Implementado en
// infrastructure/storage con Google Cloud Storage.
type ObjectStorage interface {
	// Upload sube el objeto y devuelve su URL pública.
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
	// DeleteByURL elimina el objeto al que apunta la URL devuelta por Upload.
	DeleteByURL(ctx context.Context, url string) error
	// Ping verifica conectividad con el bucket (health check).
	Ping(ctx context.Context) error
}
