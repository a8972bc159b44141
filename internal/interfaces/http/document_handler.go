package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tradeportal-api/internal/application/documents"
	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

// DocumentHandler maneja las peticiones HTTP de documentos corporativos
// (admin y staff; el borrado queda para admin en el router).
type DocumentHandler struct {
	uc *documents.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Upload sube un documento (multipart "file" + metadatos form).
// POST /api/documents
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	var in dto.UploadDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "formulario inválido")
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "archivo multipart 'file' requerido")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "no se pudo leer el archivo")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "no se pudo leer el archivo")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc, err := h.uc.Upload(c.Context(), GetUserID(c), in, fileHeader.Filename, contentType, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// List lista documentos con filtros opcionales.
// GET /api/documents?category=&search=&limit=&offset=
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	f := repository.DocumentFilters{
		Category: entity.DocumentCategory(c.Query("category")),
		Search:   c.Query("search"),
	}
	limit, offset := parsePage(c)
	docs, err := h.uc.List(c.Context(), f, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(docs)
}

// GetByID obtiene un documento.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	doc, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

// Delete borra el registro y el objeto del bucket.
// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
