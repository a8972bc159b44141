package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `
	s.id, s.item_name, s.category, s.current_stock, s.min_stock, s.unit, s.location,
	s.notes, s.last_updated_by, s.created_at, s.updated_at, u.full_name`

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// La tabla no guarda estado: low_stock/out_of_stock se derivan al leer.
type StockRepo struct {
	pool *pgxpool.Pool
}

// NewStockRepository construye el adaptador de persistencia para stock de oficina.
func NewStockRepository(pool *pgxpool.Pool) *StockRepo {
	return &StockRepo{pool: pool}
}

// Create persiste un ítem nuevo.
func (r *StockRepo) Create(item *entity.StockOffice) error {
	query := `
		INSERT INTO stock_office (id, item_name, category, current_stock, min_stock, unit, location,
			notes, last_updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.ItemName, item.Category, item.CurrentStock, item.MinStock, item.Unit,
		nullIfEmpty(item.Location), nullIfEmpty(item.Notes), item.LastUpdatedBy,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID, (nil, nil) si no existe.
func (r *StockRepo) GetByID(id string) (*entity.StockOffice, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_office s LEFT JOIN users u ON u.id = s.last_updated_by
		WHERE s.id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	item, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item by id: %w", err)
	}
	return item, nil
}

// List lista ítems con filtros opcionales, por nombre.
func (r *StockRepo) List(f repository.StockFilters) ([]*entity.StockOffice, error) {
	var conds []string
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("s.category = $%d", len(args)))
	}
	if f.Location != "" {
		args = append(args, f.Location)
		conds = append(conds, fmt.Sprintf("s.location = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(s.item_name ILIKE $%d OR s.notes ILIKE $%d)", len(args), len(args)))
	}
	if f.LowStock {
		conds = append(conds, "s.current_stock <= s.min_stock")
	}

	query := `
		SELECT ` + stockColumns + `
		FROM stock_office s LEFT JOIN users u ON u.id = s.last_updated_by`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY s.item_name ASC"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockOffice
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// ListLowStock devuelve los ítems en o por debajo del mínimo.
func (r *StockRepo) ListLowStock() ([]*entity.StockOffice, error) {
	return r.List(repository.StockFilters{LowStock: true})
}

// Update actualiza los datos del ítem (no la cantidad).
func (r *StockRepo) Update(item *entity.StockOffice) error {
	query := `
		UPDATE stock_office SET item_name = $2, category = $3, min_stock = $4, unit = $5,
			location = $6, notes = $7, last_updated_by = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		item.ID, item.ItemName, item.Category, item.MinStock, item.Unit,
		nullIfEmpty(item.Location), nullIfEmpty(item.Notes), item.LastUpdatedBy, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantity sobreescritura absoluta de current_stock. Devuelve la fila
// actualizada, nil si el id no existe.
func (r *StockRepo) SetQuantity(id string, quantity int, userID string) (*entity.StockOffice, error) {
	query := `
		UPDATE stock_office SET current_stock = $2, last_updated_by = $3, updated_at = now()
		WHERE id = $1
		RETURNING id`
	return r.applyQuantity(query, id, quantity, userID)
}

// AdjustQuantity aplica el delta con piso en cero en una sola sentencia:
// GREATEST(0, current_stock + delta). Dos ajustes concurrentes se serializan
// en la fila, sin read-modify-write del cliente.
func (r *StockRepo) AdjustQuantity(id string, delta int, userID string) (*entity.StockOffice, error) {
	query := `
		UPDATE stock_office SET current_stock = GREATEST(0, current_stock + $2),
			last_updated_by = $3, updated_at = now()
		WHERE id = $1
		RETURNING id`
	return r.applyQuantity(query, id, delta, userID)
}

func (r *StockRepo) applyQuantity(query, id string, amount int, userID string) (*entity.StockOffice, error) {
	var returned string
	err := r.pool.QueryRow(context.Background(), query, id, amount, userID).Scan(&returned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update stock quantity: %w", err)
	}
	return r.GetByID(id)
}

// Delete elimina un ítem. ErrNotFound si el id no existe.
func (r *StockRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM stock_office WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Locations devuelve las ubicaciones distintas registradas, ordenadas.
func (r *StockRepo) Locations() ([]string, error) {
	query := `
		SELECT DISTINCT location FROM stock_office
		WHERE location IS NOT NULL AND location <> ''
		ORDER BY location ASC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock locations: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, loc)
	}
	return list, rows.Err()
}

func scanStockItem(row pgx.Row) (*entity.StockOffice, error) {
	var item entity.StockOffice
	var location, notes, updatedByName *string
	err := row.Scan(
		&item.ID, &item.ItemName, &item.Category, &item.CurrentStock, &item.MinStock,
		&item.Unit, &location, &notes, &item.LastUpdatedBy, &item.CreatedAt, &item.UpdatedAt,
		&updatedByName,
	)
	if err != nil {
		return nil, err
	}
	if location != nil {
		item.Location = *location
	}
	if notes != nil {
		item.Notes = *notes
	}
	if updatedByName != nil {
		item.LastUpdatedByName = *updatedByName
	}
	return &item, nil
}
