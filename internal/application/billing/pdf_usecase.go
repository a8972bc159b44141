package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

// PDFUseCase descarga de facturas en PDF.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// Download genera el PDF de la factura y devuelve bytes + nombre de archivo.
func (uc *PDFUseCase) Download(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.generator.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("generando PDF de la factura %s: %w", inv.Number, err)
	}
	return data, inv.Number + ".pdf", nil
}
