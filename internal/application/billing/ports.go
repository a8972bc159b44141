package billing

import (
	"context"

	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación PDF de una factura.
// Implementado en infrastructure/pdf con maroto.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice) ([]byte, error)
}
