package repository

import (
	"time"

	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

// InvoiceFilters filtros opcionales para listar facturas.
type InvoiceFilters struct {
	Status   entity.InvoiceStatus // vacío = todas
	Customer string               // substring sobre customer_name, case-insensitive
	DateFrom *time.Time           // issue_date >=
	DateTo   *time.Time           // issue_date <=
}

// InvoiceRepository define el puerto de persistencia para Invoice.
// Los GetBy* devuelven (nil, nil) cuando la fila no existe.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	List(f InvoiceFilters, limit, offset int) ([]*entity.Invoice, error)
	// ListByStatuses devuelve facturas en cualquiera de los estados dados
	// (selector de facturas vinculables a un embarque).
	ListByStatuses(statuses []entity.InvoiceStatus) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	// SetStatus sobreescribe el estado sin restricción de transición.
	SetStatus(id string, status entity.InvoiceStatus) error
	// Delete falla con ErrNotFound si el id no existe (borrado ruidoso).
	Delete(id string) error
	// LastNumber devuelve el mayor número INV-<year>-* existente, "" si no hay.
	LastNumber(year int) (string, error)
}
