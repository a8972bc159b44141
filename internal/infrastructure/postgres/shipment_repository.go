package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `
	s.id, s.shipment_code, s.invoice_id, s.vessel_name, s.departure_port, s.arrival_port,
	s.departure_date, s.arrival_date, s.quantity, s.status, s.documents,
	s.created_by, s.created_at, s.updated_at, i.invoice_number, u.full_name`

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL.
// Los documentos adjuntos viven en la columna documents (JSONB).
type ShipmentRepo struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository construye el adaptador de persistencia para embarques.
func NewShipmentRepository(pool *pgxpool.Pool) *ShipmentRepo {
	return &ShipmentRepo{pool: pool}
}

// Create persiste un embarque nuevo. Un choque del índice único de
// shipment_code se reporta como ErrDuplicate.
func (r *ShipmentRepo) Create(s *entity.Shipment) error {
	docs, err := json.Marshal(s.Documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	query := `
		INSERT INTO shipments (id, shipment_code, invoice_id, vessel_name, departure_port, arrival_port,
			departure_date, arrival_date, quantity, status, documents, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.pool.Exec(context.Background(), query,
		s.ID, s.Code, nullIfEmpty(s.InvoiceID), s.VesselName, s.DeparturePort, s.ArrivalPort,
		s.DepartureDate, s.ArrivalDate, s.Quantity, s.Status, docs,
		s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID obtiene un embarque por ID, (nil, nil) si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments s
		LEFT JOIN invoices i ON i.id = s.invoice_id
		LEFT JOIN users u ON u.id = s.created_by
		WHERE s.id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	s, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment by id: %w", err)
	}
	return s, nil
}

// List lista embarques con filtros opcionales, más recientes primero.
func (r *ShipmentRepo) List(f repository.ShipmentFilters, limit, offset int) ([]*entity.Shipment, error) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("s.status = $%d", len(args)))
	}
	if f.Vessel != "" {
		args = append(args, "%"+f.Vessel+"%")
		conds = append(conds, fmt.Sprintf("s.vessel_name ILIKE $%d", len(args)))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		conds = append(conds, fmt.Sprintf("s.departure_date >= $%d", len(args)))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		conds = append(conds, fmt.Sprintf("s.departure_date <= $%d", len(args)))
	}
	if f.InvoiceID != "" {
		args = append(args, f.InvoiceID)
		conds = append(conds, fmt.Sprintf("s.invoice_id = $%d", len(args)))
	}

	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments s
		LEFT JOIN invoices i ON i.id = s.invoice_id
		LEFT JOIN users u ON u.id = s.created_by`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza los datos del viaje (no el estado ni los documentos).
func (r *ShipmentRepo) Update(s *entity.Shipment) error {
	query := `
		UPDATE shipments SET invoice_id = $2, vessel_name = $3, departure_port = $4, arrival_port = $5,
			departure_date = $6, arrival_date = $7, quantity = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		s.ID, nullIfEmpty(s.InvoiceID), s.VesselName, s.DeparturePort, s.ArrivalPort,
		s.DepartureDate, s.ArrivalDate, s.Quantity, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus actualiza el estado y estampa la fecha de llegada en la misma
// sentencia cuando corresponde.
func (r *ShipmentRepo) SetStatus(id string, status entity.ShipmentStatus, arrivalDate *time.Time) error {
	query := `
		UPDATE shipments SET status = $2, arrival_date = COALESCE($3, arrival_date), updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id, status, arrivalDate)
	if err != nil {
		return fmt.Errorf("set shipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendDocument agrega el documento a la lista JSONB del lado del servidor,
// sin read-modify-write del cliente.
func (r *ShipmentRepo) AppendDocument(id string, doc entity.ShipmentDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	query := `
		UPDATE shipments
		SET documents = COALESCE(documents, '[]'::jsonb) || jsonb_build_array($2::jsonb),
			updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id, payload)
	if err != nil {
		return fmt.Errorf("append shipment document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveDocument elimina de la lista los documentos cuya URL coincida.
func (r *ShipmentRepo) RemoveDocument(id, url string) error {
	query := `
		UPDATE shipments
		SET documents = COALESCE((
				SELECT jsonb_agg(d) FROM jsonb_array_elements(documents) AS d
				WHERE d->>'url' <> $2
			), '[]'::jsonb),
			updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id, url)
	if err != nil {
		return fmt.Errorf("remove shipment document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un embarque. ErrNotFound si el id no existe.
func (r *ShipmentRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LastCode devuelve el mayor shipment_code del año, "" si no hay ninguno.
func (r *ShipmentRepo) LastCode(year int) (string, error) {
	query := `
		SELECT shipment_code FROM shipments
		WHERE shipment_code LIKE $1
		ORDER BY shipment_code DESC LIMIT 1`
	var code string
	err := r.pool.QueryRow(context.Background(), query, fmt.Sprintf("SHIP-%d-%%", year)).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last shipment code: %w", err)
	}
	return code, nil
}

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	var invoiceID, invoiceNumber, createdByName *string
	var docs []byte
	err := row.Scan(
		&s.ID, &s.Code, &invoiceID, &s.VesselName, &s.DeparturePort, &s.ArrivalPort,
		&s.DepartureDate, &s.ArrivalDate, &s.Quantity, &s.Status, &docs,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt, &invoiceNumber, &createdByName,
	)
	if err != nil {
		return nil, err
	}
	if invoiceID != nil {
		s.InvoiceID = *invoiceID
	}
	if invoiceNumber != nil {
		s.InvoiceNumber = *invoiceNumber
	}
	if createdByName != nil {
		s.CreatedByName = *createdByName
	}
	s.Documents = []entity.ShipmentDocument{}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &s.Documents); err != nil {
			return nil, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	return &s, nil
}
