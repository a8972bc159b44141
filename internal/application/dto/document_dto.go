package dto

// UploadDocumentRequest metadatos del documento a subir (el binario viaja
// como multipart "file").
type UploadDocumentRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"` // contract | company_doc | report | other
	IsPublic    bool   `form:"is_public"`
	Tags        string `form:"tags"` // separados por coma
}

// DocumentResponse documento en respuestas.
type DocumentResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	URL            string   `json:"url"`
	FileSize       int64    `json:"file_size"`
	FileType       string   `json:"file_type"`
	Category       string   `json:"category"`
	UploadedBy     string   `json:"uploaded_by"`
	UploadedByName string   `json:"uploaded_by_name,omitempty"`
	IsPublic       bool     `json:"is_public"`
	Tags           []string `json:"tags,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// DocumentStatsDTO conteos por categoría, para el dashboard.
type DocumentStatsDTO struct {
	Total       int `json:"total"`
	Contracts   int `json:"contracts"`
	Reports     int `json:"reports"`
	CompanyDocs int `json:"company_docs"`
	Other       int `json:"other"`
}
