package entity

import "time"

// DocumentCategory categoría de un documento de la empresa. Enum cerrado.
type DocumentCategory string

const (
	DocumentCategoryContract   DocumentCategory = "contract"
	DocumentCategoryCompanyDoc DocumentCategory = "company_doc"
	DocumentCategoryReport     DocumentCategory = "report"
	DocumentCategoryOther      DocumentCategory = "other"
)

// Valid reporta si la categoría es uno de los valores conocidos.
func (c DocumentCategory) Valid() bool {
	switch c {
	case DocumentCategoryContract, DocumentCategoryCompanyDoc, DocumentCategoryReport, DocumentCategoryOther:
		return true
	}
	return false
}

// Document representa un documento del registro de la empresa
// (contratos, reportes, documentos societarios). El archivo vive en el
// object storage; la fila solo guarda la ruta.
type Document struct {
	ID          string
	Title       string
	Description string
	FilePath    string // ruta del objeto en el bucket
	FileSize    int64
	FileType    string // MIME type
	Category    DocumentCategory
	UploadedBy  string
	IsPublic    bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Campo de lookup (join con users), no persistido en documents.
	UploadedByName string
}
