package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// Columnas de invoices con alias i, más el creador por join.
const invoiceColumns = `
	i.id, i.invoice_number, i.customer_name, i.customer_email, i.issue_date, i.due_date,
	i.items, i.subtotal, i.tax_percent, i.extra_fee, i.total, i.status,
	i.created_by, i.created_at, i.updated_at, u.full_name, u.email`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
// Las líneas viven en la columna items (JSONB).
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// Create persiste una factura nueva. La unicidad de invoice_number la
// garantiza un índice único; un choque se reporta como ErrDuplicate para que
// el caso de uso regenere el número y reintente.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO invoices (id, invoice_number, customer_name, customer_email, issue_date, due_date,
			items, subtotal, tax_percent, extra_fee, total, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.pool.Exec(context.Background(), query,
		inv.ID, inv.Number, inv.CustomerName, nullIfEmpty(inv.CustomerEmail),
		inv.IssueDate, inv.DueDate, items, inv.Subtotal, inv.TaxPercent, inv.ExtraFee,
		inv.Total, inv.Status, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID, (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i LEFT JOIN users u ON u.id = i.created_by
		WHERE i.id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

// List lista facturas con filtros opcionales, más recientes primero.
func (r *InvoiceRepo) List(f repository.InvoiceFilters, limit, offset int) ([]*entity.Invoice, error) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if f.Customer != "" {
		args = append(args, "%"+f.Customer+"%")
		conds = append(conds, fmt.Sprintf("i.customer_name ILIKE $%d", len(args)))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		conds = append(conds, fmt.Sprintf("i.issue_date >= $%d", len(args)))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		conds = append(conds, fmt.Sprintf("i.issue_date <= $%d", len(args)))
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i LEFT JOIN users u ON u.id = i.created_by`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY i.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// ListByStatuses devuelve facturas en cualquiera de los estados dados.
func (r *InvoiceRepo) ListByStatuses(statuses []entity.InvoiceStatus) ([]*entity.Invoice, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(statuses))
	for _, st := range statuses {
		values = append(values, string(st))
	}
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i LEFT JOIN users u ON u.id = i.created_by
		WHERE i.status = ANY($1)
		ORDER BY i.invoice_number DESC`
	rows, err := r.pool.Query(context.Background(), query, values)
	if err != nil {
		return nil, fmt.Errorf("list invoices by status: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// Update actualiza los datos de una factura (incluidos items y totales).
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		UPDATE invoices SET customer_name = $2, customer_email = $3, issue_date = $4, due_date = $5,
			items = $6, subtotal = $7, tax_percent = $8, extra_fee = $9, total = $10, status = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		inv.ID, inv.CustomerName, nullIfEmpty(inv.CustomerEmail), inv.IssueDate, inv.DueDate,
		items, inv.Subtotal, inv.TaxPercent, inv.ExtraFee, inv.Total, inv.Status, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus sobreescribe el estado.
func (r *InvoiceRepo) SetStatus(id string, status entity.InvoiceStatus) error {
	query := `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("set invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una factura. ErrNotFound si el id no existe.
func (r *InvoiceRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LastNumber devuelve el mayor invoice_number del año, "" si no hay ninguno.
// El orden lexicográfico funciona porque el consecutivo va con ceros a la
// izquierda.
func (r *InvoiceRepo) LastNumber(year int) (string, error) {
	query := `
		SELECT invoice_number FROM invoices
		WHERE invoice_number LIKE $1
		ORDER BY invoice_number DESC LIMIT 1`
	var number string
	err := r.pool.QueryRow(context.Background(), query, fmt.Sprintf("INV-%d-%%", year)).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	return number, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerEmail, createdByName, createdByEmail *string
	var items []byte
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.CustomerName, &customerEmail, &inv.IssueDate, &inv.DueDate,
		&items, &inv.Subtotal, &inv.TaxPercent, &inv.ExtraFee, &inv.Total, &inv.Status,
		&inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt, &createdByName, &createdByEmail,
	)
	if err != nil {
		return nil, err
	}
	if customerEmail != nil {
		inv.CustomerEmail = *customerEmail
	}
	if createdByName != nil {
		inv.CreatedByName = *createdByName
	}
	if createdByEmail != nil {
		inv.CreatedByEmail = *createdByEmail
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &inv, nil
}

func scanInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
