package shipping

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
	"github.com/jhoicas/tradeportal-api/internal/domain/sequence"
	"github.com/jhoicas/tradeportal-api/pkg/logger"
)

const createRetries = 3

const dateLayout = "2006-01-02"

// ShipmentUseCase ciclo de vida de embarques: codificación, progresión
// monótona de estado, documentos adjuntos y efectos sobre la factura vinculada.
type ShipmentUseCase struct {
	shipmentRepo repository.ShipmentRepository
	invoiceRepo  repository.InvoiceRepository
	storage      ObjectStorage
	log          *logger.Logger
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(
	shipmentRepo repository.ShipmentRepository,
	invoiceRepo repository.InvoiceRepository,
	storage ObjectStorage,
	log *logger.Logger,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		shipmentRepo: shipmentRepo,
		invoiceRepo:  invoiceRepo,
		storage:      storage,
		log:          log,
	}
}

// Create crea un embarque en Scheduled con código fresco SHIP-<año>-NNNN y
// lista de documentos vacía. Si trae invoice_id, la factura debe existir.
func (uc *ShipmentUseCase) Create(ctx context.Context, userID string, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.VesselName == "" || in.DeparturePort == "" || in.ArrivalPort == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	departureDate, err := parseDate(in.DepartureDate)
	if err != nil {
		return nil, err
	}
	var arrivalDate *time.Time
	if in.ArrivalDate != "" {
		d, err := parseDate(in.ArrivalDate)
		if err != nil {
			return nil, err
		}
		arrivalDate = &d
	}
	if in.InvoiceID != "" {
		inv, err := uc.invoiceRepo.GetByID(in.InvoiceID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, fmt.Errorf("factura %s: %w", in.InvoiceID, domain.ErrNotFound)
		}
	}

	now := time.Now()
	shipment := &entity.Shipment{
		ID:            uuid.New().String(),
		InvoiceID:     in.InvoiceID,
		VesselName:    in.VesselName,
		DeparturePort: in.DeparturePort,
		ArrivalPort:   in.ArrivalPort,
		DepartureDate: departureDate,
		ArrivalDate:   arrivalDate,
		Quantity:      in.Quantity,
		Status:        entity.ShipmentStatusScheduled,
		Documents:     []entity.ShipmentDocument{},
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var lastErr error
	for attempt := 0; attempt < createRetries; attempt++ {
		last, err := uc.shipmentRepo.LastCode(now.Year())
		if err != nil {
			return nil, err
		}
		shipment.Code = sequence.Next(sequence.PrefixShipment, now.Year(), last)
		if err := uc.shipmentRepo.Create(shipment); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return toShipmentResponse(shipment, nil), nil
	}
	return nil, lastErr
}

// Get devuelve un embarque por id.
func (uc *ShipmentUseCase) Get(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.getShipment(id)
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(shipment, nil), nil
}

// List lista embarques con filtros opcionales.
func (uc *ShipmentUseCase) List(ctx context.Context, f repository.ShipmentFilters, limit, offset int) ([]dto.ShipmentResponse, error) {
	shipments, err := uc.shipmentRepo.List(f, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, *toShipmentResponse(s, nil))
	}
	return out, nil
}

// Update aplica un patch parcial a los datos del viaje. El estado NO se toca
// por esta vía: solo Advance/SetStatus mueven la progresión.
func (uc *ShipmentUseCase) Update(ctx context.Context, id string, in dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	shipment, err := uc.getShipment(id)
	if err != nil {
		return nil, err
	}

	if in.InvoiceID != nil {
		if *in.InvoiceID != "" {
			inv, err := uc.invoiceRepo.GetByID(*in.InvoiceID)
			if err != nil {
				return nil, err
			}
			if inv == nil {
				return nil, fmt.Errorf("factura %s: %w", *in.InvoiceID, domain.ErrNotFound)
			}
		}
		shipment.InvoiceID = *in.InvoiceID
	}
	if in.VesselName != nil {
		if *in.VesselName == "" {
			return nil, domain.ErrInvalidInput
		}
		shipment.VesselName = *in.VesselName
	}
	if in.DeparturePort != nil {
		shipment.DeparturePort = *in.DeparturePort
	}
	if in.ArrivalPort != nil {
		shipment.ArrivalPort = *in.ArrivalPort
	}
	if in.DepartureDate != nil {
		d, err := parseDate(*in.DepartureDate)
		if err != nil {
			return nil, err
		}
		shipment.DepartureDate = d
	}
	if in.ArrivalDate != nil {
		if *in.ArrivalDate == "" {
			shipment.ArrivalDate = nil
		} else {
			d, err := parseDate(*in.ArrivalDate)
			if err != nil {
				return nil, err
			}
			shipment.ArrivalDate = &d
		}
	}
	if in.Quantity != nil {
		if in.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		shipment.Quantity = *in.Quantity
	}

	shipment.UpdatedAt = time.Now()
	if err := uc.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}
	return toShipmentResponse(shipment, nil), nil
}

// Advance mueve el embarque al siguiente estado de la progresión.
// Completed es terminal: avanzar desde ahí devuelve ErrTerminalStatus.
func (uc *ShipmentUseCase) Advance(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.getShipment(id)
	if err != nil {
		return nil, err
	}
	next, ok := shipment.Status.Next()
	if !ok {
		return nil, domain.ErrTerminalStatus
	}
	return uc.transition(ctx, shipment, next)
}

// SetStatus mueve el embarque al estado pedido, que debe ser exactamente el
// siguiente de la progresión. Retrocesos y saltos devuelven ErrConflict.
func (uc *ShipmentUseCase) SetStatus(ctx context.Context, id, status string) (*dto.ShipmentResponse, error) {
	st := entity.ShipmentStatus(status)
	if !st.Valid() {
		return nil, domain.ErrInvalidInput
	}
	shipment, err := uc.getShipment(id)
	if err != nil {
		return nil, err
	}
	next, ok := shipment.Status.Next()
	if !ok {
		return nil, domain.ErrTerminalStatus
	}
	if st != next {
		return nil, fmt.Errorf("de %s solo se puede pasar a %s: %w", shipment.Status, next, domain.ErrConflict)
	}
	return uc.transition(ctx, shipment, st)
}

// transition aplica el cambio de estado: estampa la fecha de llegada al entrar
// a Arrived/Completed si falta, y al completar marca la factura vinculada como
// pagada. Ese último efecto es best-effort: si falla, el embarque queda
// Completed igual y el fallo se reporta en Warnings.
func (uc *ShipmentUseCase) transition(ctx context.Context, shipment *entity.Shipment, next entity.ShipmentStatus) (*dto.ShipmentResponse, error) {
	var arrivalDate *time.Time
	if next.NeedsArrivalDate() && shipment.ArrivalDate == nil {
		now := time.Now()
		arrivalDate = &now
	}
	if err := uc.shipmentRepo.SetStatus(shipment.ID, next, arrivalDate); err != nil {
		return nil, err
	}
	shipment.Status = next
	if arrivalDate != nil {
		shipment.ArrivalDate = arrivalDate
	}

	var warnings []string
	if next == entity.ShipmentStatusCompleted && shipment.InvoiceID != "" {
		if err := uc.invoiceRepo.SetStatus(shipment.InvoiceID, entity.InvoiceStatusPaid); err != nil {
			uc.log.Warn().Err(err).
				Str("shipment_id", shipment.ID).
				Str("invoice_id", shipment.InvoiceID).
				Msg("no se pudo marcar la factura como pagada")
			warnings = append(warnings, fmt.Sprintf("la factura %s no pudo marcarse como pagada: %v", shipment.InvoiceID, err))
		}
	}
	return toShipmentResponse(shipment, warnings), nil
}

// AddDocument sube el archivo al bucket y agrega sus metadatos a la lista del
// embarque. Si el registro falla, el objeto recién subido se borra.
func (uc *ShipmentUseCase) AddDocument(ctx context.Context, id, name, filename, contentType string, data []byte) (*dto.ShipmentResponse, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	shipment, err := uc.getShipment(id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = filename
	}

	objectName := fmt.Sprintf("shipments/%s/%d-%s%s",
		shipment.ID, time.Now().UnixNano(), uuid.New().String()[:8], strings.ToLower(filepath.Ext(filename)))
	url, err := uc.storage.Upload(ctx, objectName, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("subiendo documento del embarque %s: %w", shipment.Code, err)
	}

	doc := entity.ShipmentDocument{
		Name:       name,
		URL:        url,
		Type:       contentType,
		UploadedAt: time.Now(),
	}
	if err := uc.shipmentRepo.AppendDocument(shipment.ID, doc); err != nil {
		if delErr := uc.storage.DeleteByURL(ctx, url); delErr != nil {
			uc.log.Warn().Err(delErr).Str("url", url).Msg("objeto huérfano en el bucket")
		}
		return nil, err
	}
	shipment.Documents = append(shipment.Documents, doc)
	return toShipmentResponse(shipment, nil), nil
}

// RemoveDocument quita el documento de la lista y borra el objeto del bucket.
// El borrado del objeto es best-effort: si falla se reporta en Warnings.
func (uc *ShipmentUseCase) RemoveDocument(ctx context.Context, id, url string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.getShipment(id)
	if err != nil {
		return nil, err
	}
	found := false
	kept := shipment.Documents[:0:0]
	for _, doc := range shipment.Documents {
		if doc.URL == url {
			found = true
			continue
		}
		kept = append(kept, doc)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	if err := uc.shipmentRepo.RemoveDocument(shipment.ID, url); err != nil {
		return nil, err
	}
	shipment.Documents = kept

	var warnings []string
	if err := uc.storage.DeleteByURL(ctx, url); err != nil {
		uc.log.Warn().Err(err).Str("url", url).Msg("no se pudo borrar el objeto del bucket")
		warnings = append(warnings, fmt.Sprintf("el archivo no pudo borrarse del bucket: %v", err))
	}
	return toShipmentResponse(shipment, warnings), nil
}

// Delete borrado duro del embarque. Los objetos del bucket se borran
// best-effort; un fallo ahí no revierte el borrado de la fila.
func (uc *ShipmentUseCase) Delete(ctx context.Context, id string) error {
	shipment, err := uc.getShipment(id)
	if err != nil {
		return err
	}
	if err := uc.shipmentRepo.Delete(id); err != nil {
		return err
	}
	for _, doc := range shipment.Documents {
		if err := uc.storage.DeleteByURL(ctx, doc.URL); err != nil {
			uc.log.Warn().Err(err).Str("url", doc.URL).Msg("no se pudo borrar el objeto del bucket")
		}
	}
	return nil
}

func (uc *ShipmentUseCase) getShipment(id string) (*entity.Shipment, error) {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	return shipment, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, domain.ErrInvalidInput
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return d, nil
}

func toShipmentResponse(s *entity.Shipment, warnings []string) *dto.ShipmentResponse {
	docs := make([]dto.ShipmentDocumentResponse, 0, len(s.Documents))
	for _, d := range s.Documents {
		docs = append(docs, dto.ShipmentDocumentResponse{
			Name:       d.Name,
			URL:        d.URL,
			Type:       d.Type,
			UploadedAt: d.UploadedAt.Format(time.RFC3339),
		})
	}
	resp := &dto.ShipmentResponse{
		ID:            s.ID,
		Code:          s.Code,
		InvoiceID:     s.InvoiceID,
		InvoiceNumber: s.InvoiceNumber,
		VesselName:    s.VesselName,
		DeparturePort: s.DeparturePort,
		ArrivalPort:   s.ArrivalPort,
		DepartureDate: s.DepartureDate.Format(dateLayout),
		Quantity:      s.Quantity,
		Status:        string(s.Status),
		CanAdvance:    s.Status.CanAdvance(),
		Documents:     docs,
		CreatedBy:     s.CreatedBy,
		CreatedByName: s.CreatedByName,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
		Warnings:      warnings,
	}
	if s.ArrivalDate != nil {
		resp.ArrivalDate = s.ArrivalDate.Format(dateLayout)
	}
	return resp
}
