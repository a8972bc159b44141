package dto

import "github.com/shopspring/decimal"

// CreateShipmentRequest body para POST /api/shipments.
type CreateShipmentRequest struct {
	InvoiceID     string          `json:"invoice_id,omitempty"`
	VesselName    string          `json:"vessel_name"`
	DeparturePort string          `json:"departure_port"`
	ArrivalPort   string          `json:"arrival_port"`
	DepartureDate string          `json:"departure_date"` // YYYY-MM-DD
	ArrivalDate   string          `json:"arrival_date,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"` // toneladas
}

// UpdateShipmentRequest body para PUT /api/shipments/:id. Patch parcial.
type UpdateShipmentRequest struct {
	InvoiceID     *string          `json:"invoice_id,omitempty"`
	VesselName    *string          `json:"vessel_name,omitempty"`
	DeparturePort *string          `json:"departure_port,omitempty"`
	ArrivalPort   *string          `json:"arrival_port,omitempty"`
	DepartureDate *string          `json:"departure_date,omitempty"`
	ArrivalDate   *string          `json:"arrival_date,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
}

// SetShipmentStatusRequest body para PATCH /api/shipments/:id/status.
type SetShipmentStatusRequest struct {
	Status string `json:"status"` // Scheduled | On Transit | Arrived | Completed
}

// AddShipmentDocumentRequest metadatos del documento a adjuntar.
// El binario viaja como multipart "file"; Name vacío usa el nombre del archivo.
type AddShipmentDocumentRequest struct {
	Name string `form:"name"`
}

// ShipmentDocumentResponse documento adjunto en respuestas.
type ShipmentDocumentResponse struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Type       string `json:"type"`
	UploadedAt string `json:"uploaded_at"`
}

// ShipmentResponse embarque en respuestas. Warnings lista los efectos
// secundarios best-effort que fallaron (la operación principal sí se aplicó).
type ShipmentResponse struct {
	ID            string                     `json:"id"`
	Code          string                     `json:"shipment_code"`
	InvoiceID     string                     `json:"invoice_id,omitempty"`
	InvoiceNumber string                     `json:"invoice_number,omitempty"`
	VesselName    string                     `json:"vessel_name"`
	DeparturePort string                     `json:"departure_port"`
	ArrivalPort   string                     `json:"arrival_port"`
	DepartureDate string                     `json:"departure_date"`
	ArrivalDate   string                     `json:"arrival_date,omitempty"`
	Quantity      decimal.Decimal            `json:"quantity"`
	Status        string                     `json:"status"`
	CanAdvance    bool                       `json:"can_advance"`
	Documents     []ShipmentDocumentResponse `json:"documents"`
	CreatedBy     string                     `json:"created_by"`
	CreatedByName string                     `json:"created_by_name,omitempty"`
	CreatedAt     string                     `json:"created_at"`
	UpdatedAt     string                     `json:"updated_at"`
	Warnings      []string                   `json:"warnings,omitempty"`
}

// ShipmentStatsDTO conteos por estado + tonelaje total, para el dashboard.
type ShipmentStatsDTO struct {
	Total         int             `json:"total"`
	Scheduled     int             `json:"scheduled"`
	OnTransit     int             `json:"on_transit"`
	Arrived       int             `json:"arrived"`
	Completed     int             `json:"completed"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
