package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	domainbilling "github.com/jhoicas/tradeportal-api/internal/domain/billing"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
	"github.com/jhoicas/tradeportal-api/internal/domain/sequence"
)

// Reintentos de creación ante choque de numeración: el índice único sobre
// invoice_number serializa creaciones concurrentes del mismo año; al chocar
// se regenera el número y se reintenta.
const createRetries = 3

const dateLayout = "2006-01-02"

// InvoiceUseCase ciclo de vida de facturas: numeración, recálculo de totales,
// estado plano y borrado.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo}
}

// Create crea una factura: número fresco INV-<año>-NNNN, estado unpaid y
// totales recalculados en el servidor a partir de las líneas.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}
	issueDate, err := parseDate(in.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	items := domainbilling.NormalizeItems(toEntityItems(in.Items))
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxPercent.LessThan(decimal.Zero) || in.ExtraFee.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	totals := domainbilling.ComputeTotals(items, in.TaxPercent, in.ExtraFee)

	now := time.Now()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Items:         items,
		Subtotal:      totals.Subtotal,
		TaxPercent:    in.TaxPercent,
		ExtraFee:      in.ExtraFee,
		Total:         totals.Total,
		Status:        entity.InvoiceStatusUnpaid,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var lastErr error
	for attempt := 0; attempt < createRetries; attempt++ {
		last, err := uc.invoiceRepo.LastNumber(now.Year())
		if err != nil {
			return nil, err
		}
		inv.Number = sequence.Next(sequence.PrefixInvoice, now.Year(), last)
		if err := uc.invoiceRepo.Create(inv); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				lastErr = err
				continue // otro proceso tomó el número; regenerar
			}
			return nil, err
		}
		return toInvoiceResponse(inv), nil
	}
	return nil, lastErr
}

// Get devuelve una factura por id.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// List lista facturas con filtros opcionales.
func (uc *InvoiceUseCase) List(ctx context.Context, f repository.InvoiceFilters, limit, offset int) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(f, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

// AvailableForShipment devuelve facturas vinculables a un embarque
// (estados unpaid y paid; overdue queda fuera del selector).
func (uc *InvoiceUseCase) AvailableForShipment(ctx context.Context) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByStatuses([]entity.InvoiceStatus{
		entity.InvoiceStatusUnpaid, entity.InvoiceStatusPaid,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

// Update aplica un patch parcial. Si el patch trae items, tax_percent o
// extra_fee, los totales se recalculan; el resto de campos se copia tal cual.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if in.CustomerName != nil {
		if *in.CustomerName == "" {
			return nil, domain.ErrInvalidInput
		}
		inv.CustomerName = *in.CustomerName
	}
	if in.CustomerEmail != nil {
		inv.CustomerEmail = *in.CustomerEmail
	}
	if in.IssueDate != nil {
		d, err := parseDate(*in.IssueDate)
		if err != nil {
			return nil, err
		}
		inv.IssueDate = d
	}
	if in.DueDate != nil {
		d, err := parseDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		inv.DueDate = d
	}

	recompute := false
	if in.Items != nil {
		items := domainbilling.NormalizeItems(toEntityItems(in.Items))
		if len(items) == 0 {
			return nil, domain.ErrInvalidInput
		}
		inv.Items = items
		recompute = true
	}
	if in.TaxPercent != nil {
		if in.TaxPercent.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		inv.TaxPercent = *in.TaxPercent
		recompute = true
	}
	if in.ExtraFee != nil {
		if in.ExtraFee.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		inv.ExtraFee = *in.ExtraFee
		recompute = true
	}
	if recompute {
		totals := domainbilling.ComputeTotals(inv.Items, inv.TaxPercent, inv.ExtraFee)
		inv.Subtotal = totals.Subtotal
		inv.Total = totals.Total
	}

	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// SetStatus sobreescribe el estado. Enum plano: no hay restricción de
// transición, a diferencia del embarque.
func (uc *InvoiceUseCase) SetStatus(ctx context.Context, id, status string) (*dto.InvoiceResponse, error) {
	st := entity.InvoiceStatus(status)
	if !st.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.invoiceRepo.SetStatus(id, st); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete borrado duro (solo admin, decidido en el router). Falla con
// ErrNotFound si el id no existe.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.invoiceRepo.Delete(id)
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

func toEntityItems(items []dto.InvoiceItemRequest) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return &dto.InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		CustomerName:   inv.CustomerName,
		CustomerEmail:  inv.CustomerEmail,
		IssueDate:      inv.IssueDate.Format(dateLayout),
		DueDate:        inv.DueDate.Format(dateLayout),
		Items:          items,
		Subtotal:       inv.Subtotal,
		TaxPercent:     inv.TaxPercent,
		ExtraFee:       inv.ExtraFee,
		Total:          inv.Total,
		TotalDisplay:   domainbilling.FormatIDR(inv.Total),
		Status:         string(inv.Status),
		CreatedBy:      inv.CreatedBy,
		CreatedByName:  inv.CreatedByName,
		CreatedByEmail: inv.CreatedByEmail,
		CreatedAt:      inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      inv.UpdatedAt.Format(time.RFC3339),
	}
}
