package repository

import "github.com/jhoicas/tradeportal-api/internal/domain/entity"

// DocumentFilters filtros opcionales para listar documentos.
type DocumentFilters struct {
	Category entity.DocumentCategory // vacío = todas
	Search   string                  // substring sobre title o description
}

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	List(f DocumentFilters, limit, offset int) ([]*entity.Document, error)
	Delete(id string) error
}
