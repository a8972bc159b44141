package repository

import (
	"time"

	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

// ShipmentFilters filtros opcionales para listar embarques.
type ShipmentFilters struct {
	Status    entity.ShipmentStatus // vacío = todos
	Vessel    string                // substring sobre vessel_name, case-insensitive
	DateFrom  *time.Time            // departure_date >=
	DateTo    *time.Time            // departure_date <=
	InvoiceID string                // vacío = todos
}

// ShipmentRepository define el puerto de persistencia para Shipment.
// Los GetBy* devuelven (nil, nil) cuando la fila no existe.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	List(f ShipmentFilters, limit, offset int) ([]*entity.Shipment, error)
	Update(shipment *entity.Shipment) error
	// SetStatus actualiza el estado y, si arrivalDate no es nil, estampa la
	// fecha de llegada en la misma sentencia.
	SetStatus(id string, status entity.ShipmentStatus, arrivalDate *time.Time) error
	// AppendDocument agrega el documento a la lista JSONB de forma atómica
	// (append del lado del servidor, sin read-modify-write del cliente).
	AppendDocument(id string, doc entity.ShipmentDocument) error
	// RemoveDocument elimina de la lista los documentos cuya URL coincida.
	RemoveDocument(id, url string) error
	// Delete falla con ErrNotFound si el id no existe (borrado ruidoso).
	Delete(id string) error
	// LastCode devuelve el mayor código SHIP-<year>-* existente, "" si no hay.
	LastCode(year int) (string, error)
}
