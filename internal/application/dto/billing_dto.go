package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest línea de factura (descripción, cantidad, precio unitario).
// El total de línea lo recalcula el servidor; el recibido se ignora.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email,omitempty"`
	IssueDate     string               `json:"issue_date"` // YYYY-MM-DD
	DueDate       string               `json:"due_date"`   // YYYY-MM-DD
	Items         []InvoiceItemRequest `json:"items"`
	TaxPercent    decimal.Decimal      `json:"tax_percent"`
	ExtraFee      decimal.Decimal      `json:"extra_fee"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id. Patch parcial:
// solo se aplican los campos presentes. Si cambian items, tax_percent o
// extra_fee, los totales se recalculan.
type UpdateInvoiceRequest struct {
	CustomerName  *string              `json:"customer_name,omitempty"`
	CustomerEmail *string              `json:"customer_email,omitempty"`
	IssueDate     *string              `json:"issue_date,omitempty"`
	DueDate       *string              `json:"due_date,omitempty"`
	Items         []InvoiceItemRequest `json:"items,omitempty"`
	TaxPercent    *decimal.Decimal     `json:"tax_percent,omitempty"`
	ExtraFee      *decimal.Decimal     `json:"extra_fee,omitempty"`
}

// SetInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type SetInvoiceStatusRequest struct {
	Status string `json:"status"` // unpaid | paid | overdue
}

// InvoiceItemResponse línea en respuestas.
type InvoiceItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"invoice_number"`
	CustomerName   string                `json:"customer_name"`
	CustomerEmail  string                `json:"customer_email,omitempty"`
	IssueDate      string                `json:"issue_date"`
	DueDate        string                `json:"due_date"`
	Items          []InvoiceItemResponse `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxPercent     decimal.Decimal       `json:"tax_percent"`
	ExtraFee       decimal.Decimal       `json:"extra_fee"`
	Total          decimal.Decimal       `json:"total"`
	TotalDisplay   string                `json:"total_display"` // ej. "Rp1.250.000"
	Status         string                `json:"status"`
	CreatedBy      string                `json:"created_by"`
	CreatedByName  string                `json:"created_by_name,omitempty"`
	CreatedByEmail string                `json:"created_by_email,omitempty"`
	CreatedAt      string                `json:"created_at"`
	UpdatedAt      string                `json:"updated_at"`
}

// InvoiceStatsDTO conteos por estado + monto total, para el dashboard.
type InvoiceStatsDTO struct {
	Total       int             `json:"total"`
	Paid        int             `json:"paid"`
	Unpaid      int             `json:"unpaid"`
	Overdue     int             `json:"overdue"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
