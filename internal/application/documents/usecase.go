package documents

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
	"github.com/jhoicas/tradeportal-api/pkg/logger"
)

// Límite de subida: 25 MB por documento.
const maxUploadBytes = 25 << 20

// ObjectStorage lo que este caso de uso necesita del bucket. Lo satisface
// el adaptador de infrastructure/storage.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}

// DocumentUseCase documentos corporativos: subida al bucket, listado con
// filtros y borrado.
type DocumentUseCase struct {
	documentRepo repository.DocumentRepository
	storage      ObjectStorage
	log          *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(documentRepo repository.DocumentRepository, storage ObjectStorage, log *logger.Logger) *DocumentUseCase {
	return &DocumentUseCase{documentRepo: documentRepo, storage: storage, log: log}
}

// Upload sube el archivo al bucket y registra sus metadatos. Si el registro
// falla, el objeto recién subido se borra.
func (uc *DocumentUseCase) Upload(ctx context.Context, userID string, in dto.UploadDocumentRequest, filename, contentType string, data []byte) (*dto.DocumentResponse, error) {
	if in.Title == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("el archivo supera el límite de 25 MB: %w", domain.ErrInvalidInput)
	}
	category := entity.DocumentCategory(in.Category)
	if !category.Valid() {
		return nil, domain.ErrInvalidInput
	}

	objectName := fmt.Sprintf("documents/%s/%d-%s%s",
		string(category), time.Now().UnixNano(), uuid.New().String()[:8], strings.ToLower(filepath.Ext(filename)))
	url, err := uc.storage.Upload(ctx, objectName, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("subiendo documento %q: %w", in.Title, err)
	}

	now := time.Now()
	doc := &entity.Document{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		FilePath:    url,
		FileSize:    int64(len(data)),
		FileType:    contentType,
		Category:    category,
		UploadedBy:  userID,
		IsPublic:    in.IsPublic,
		Tags:        parseTags(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.documentRepo.Create(doc); err != nil {
		if delErr := uc.storage.DeleteByURL(ctx, url); delErr != nil {
			uc.log.Warn().Err(delErr).Str("url", url).Msg("objeto huérfano en el bucket")
		}
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// Get devuelve un documento por id.
func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.documentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc), nil
}

// List lista documentos con filtros opcionales.
func (uc *DocumentUseCase) List(ctx context.Context, f repository.DocumentFilters, limit, offset int) ([]dto.DocumentResponse, error) {
	docs, err := uc.documentRepo.List(f, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, *toDocumentResponse(doc))
	}
	return out, nil
}

// Delete borra el registro y, best-effort, el objeto del bucket.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.documentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := uc.documentRepo.Delete(id); err != nil {
		return err
	}
	if err := uc.storage.DeleteByURL(ctx, doc.FilePath); err != nil {
		uc.log.Warn().Err(err).Str("url", doc.FilePath).Msg("no se pudo borrar el objeto del bucket")
	}
	return nil
}

func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:             doc.ID,
		Title:          doc.Title,
		Description:    doc.Description,
		URL:            doc.FilePath,
		FileSize:       doc.FileSize,
		FileType:       doc.FileType,
		Category:       string(doc.Category),
		UploadedBy:     doc.UploadedBy,
		UploadedByName: doc.UploadedByName,
		IsPublic:       doc.IsPublic,
		Tags:           doc.Tags,
		CreatedAt:      doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      doc.UpdatedAt.Format(time.RFC3339),
	}
}
