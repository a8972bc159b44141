package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus estado de un embarque. A diferencia de InvoiceStatus, la
// progresión es monótona: Scheduled → On Transit → Arrived → Completed,
// de a un paso, sin retrocesos ni saltos.
type ShipmentStatus string

const (
	ShipmentStatusScheduled ShipmentStatus = "Scheduled"
	ShipmentStatusOnTransit ShipmentStatus = "On Transit"
	ShipmentStatusArrived   ShipmentStatus = "Arrived"
	ShipmentStatusCompleted ShipmentStatus = "Completed"
)

// Valid reporta si el estado es uno de los valores conocidos.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusScheduled, ShipmentStatusOnTransit, ShipmentStatusArrived, ShipmentStatusCompleted:
		return true
	}
	return false
}

// Next devuelve el sucesor en la progresión. ok=false si el estado es
// terminal (Completed) o desconocido.
func (s ShipmentStatus) Next() (next ShipmentStatus, ok bool) {
	switch s {
	case ShipmentStatusScheduled:
		return ShipmentStatusOnTransit, true
	case ShipmentStatusOnTransit:
		return ShipmentStatusArrived, true
	case ShipmentStatusArrived:
		return ShipmentStatusCompleted, true
	case ShipmentStatusCompleted:
		return "", false
	}
	return "", false
}

// CanAdvance reporta si el estado tiene sucesor. El caller debe verificarlo
// antes de intentar avanzar.
func (s ShipmentStatus) CanAdvance() bool {
	_, ok := s.Next()
	return ok
}

// NeedsArrivalDate reporta si entrar a este estado debe estampar la fecha de
// llegada cuando aún no existe.
func (s ShipmentStatus) NeedsArrivalDate() bool {
	return s == ShipmentStatusArrived || s == ShipmentStatusCompleted
}

// ShipmentDocument documento adjunto de un embarque (BL, COA, draft survey...),
// embebido en la columna documents (JSONB). La URL apunta al object storage.
type ShipmentDocument struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"` // MIME type
	UploadedAt time.Time `json:"uploaded_at"`
}

// Shipment representa un embarque de mineral.
type Shipment struct {
	ID            string
	Code          string // SHIP-<año>-<consecutivo de 4 dígitos>
	InvoiceID     string // opcional; vacío = sin factura vinculada
	VesselName    string
	DeparturePort string
	ArrivalPort   string
	DepartureDate time.Time
	ArrivalDate   *time.Time // nil hasta Arrived/Completed
	Quantity      decimal.Decimal // toneladas
	Status        ShipmentStatus
	Documents     []ShipmentDocument
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Campos de lookup (join con invoices/users), no persistidos en shipments.
	InvoiceNumber string
	CreatedByName string
}
