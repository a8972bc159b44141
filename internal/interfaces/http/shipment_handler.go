package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/application/shipping"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

// ShipmentHandler maneja las peticiones HTTP de embarques (admin y staff).
type ShipmentHandler struct {
	uc *shipping.ShipmentUseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *shipping.ShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create crea un embarque en Scheduled con código fresco.
// POST /api/shipments
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	shipment, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// List lista embarques con filtros opcionales.
// GET /api/shipments?status=&vessel=&date_from=&date_to=&invoice_id=&limit=&offset=
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	f := repository.ShipmentFilters{
		Status:    entity.ShipmentStatus(c.Query("status")),
		Vessel:    c.Query("vessel"),
		DateFrom:  parseDateQuery(c, "date_from"),
		DateTo:    parseDateQuery(c, "date_to"),
		InvoiceID: c.Query("invoice_id"),
	}
	limit, offset := parsePage(c)
	shipments, err := h.uc.List(c.Context(), f, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shipments)
}

// GetByID obtiene un embarque.
// GET /api/shipments/:id
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	shipment, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shipment)
}

// Update aplica un patch parcial a los datos del viaje (no al estado).
// PUT /api/shipments/:id
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	var in dto.UpdateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	shipment, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shipment)
}

// Advance mueve el embarque al siguiente estado de la progresión.
// POST /api/shipments/:id/advance
func (h *ShipmentHandler) Advance(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	shipment, err := h.uc.Advance(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shipment)
}

// SetStatus mueve el embarque al estado pedido (solo el paso siguiente).
// PATCH /api/shipments/:id/status
func (h *ShipmentHandler) SetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	var in dto.SetShipmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	shipment, err := h.uc.SetStatus(c.Context(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shipment)
}

// AddDocument adjunta uno o varios archivos al embarque (multipart "file",
// opcionalmente repetido, + "name"). La subida es secuencial: el fallo de un
// archivo no cancela los siguientes; los fallos se reportan como warnings.
// POST /api/shipments/:id/documents
func (h *ShipmentHandler) AddDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "formulario multipart requerido")
	}
	files := form.File["file"]
	if len(files) == 0 {
		return badRequest(c, "archivo multipart 'file' requerido")
	}

	// El nombre explícito solo aplica cuando se sube un único archivo;
	// con varios, cada documento toma el nombre de su archivo.
	name := ""
	if len(files) == 1 {
		name = c.FormValue("name")
	}

	var (
		shipment *dto.ShipmentResponse
		warnings []string
		lastErr  error
	)
	for _, fh := range files {
		data, contentType, err := readMultipartFile(fh)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: no se pudo leer el archivo", fh.Filename))
			continue
		}
		s, err := h.uc.AddDocument(c.Context(), id, name, fh.Filename, contentType, data)
		if err != nil {
			lastErr = err
			warnings = append(warnings, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}
		shipment = s
	}
	if shipment == nil {
		if lastErr != nil {
			return respondError(c, lastErr)
		}
		return badRequest(c, "ningún archivo pudo leerse")
	}
	shipment.Warnings = append(shipment.Warnings, warnings...)
	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// readMultipartFile abre y lee un archivo multipart completo en memoria.
func readMultipartFile(fh *multipart.FileHeader) ([]byte, string, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// RemoveDocument quita un documento del embarque por su URL.
// DELETE /api/shipments/:id/documents?url=
func (h *ShipmentHandler) RemoveDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	url := c.Query("url")
	if id == "" || url == "" {
		return badRequest(c, "id y url requeridos")
	}
	shipment, err := h.uc.RemoveDocument(c.Context(), id, url)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shipment)
}

// Delete borrado duro (solo admin).
// DELETE /api/shipments/:id
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
