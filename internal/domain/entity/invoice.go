package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de cobro de una factura. Enum plano: a diferencia del
// embarque, cualquier estado es alcanzable desde cualquier otro.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Valid reporta si el estado es uno de los valores conocidos.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// InvoiceItem línea de factura, embebida en la columna items (JSONB).
// No tiene identidad propia más allá de su posición en la lista.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"` // siempre Quantity * UnitPrice
}

// Invoice representa una factura de venta de mineral.
// Subtotal/Total se recalculan en el servidor con cada cambio de items,
// tax_percent o extra_fee; nunca se confía en el valor enviado por el cliente.
type Invoice struct {
	ID            string
	Number        string // INV-<año>-<consecutivo de 4 dígitos>
	CustomerName  string
	CustomerEmail string
	IssueDate     time.Time
	DueDate       time.Time
	Items         []InvoiceItem
	Subtotal      decimal.Decimal
	TaxPercent    decimal.Decimal
	ExtraFee      decimal.Decimal
	Total         decimal.Decimal
	Status        InvoiceStatus
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Campos de lookup (join con users), no persistidos en invoices.
	CreatedByName  string
	CreatedByEmail string
}
