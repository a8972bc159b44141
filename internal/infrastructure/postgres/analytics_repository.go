package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados para el dashboard.
// Devuelve DTOs directamente: son proyecciones de lectura, no entidades.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// InvoiceSummary conteos por estado y monto total de facturas emitidas en el rango.
func (r *AnalyticsRepo) InvoiceSummary(ctx context.Context, from, to time.Time) (*dto.InvoiceStatsDTO, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'unpaid'),
			COUNT(*) FILTER (WHERE status = 'overdue'),
			COALESCE(SUM(total), 0)
		FROM invoices
		WHERE issue_date BETWEEN $1 AND $2`
	var stats dto.InvoiceStatsDTO
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&stats.Total, &stats.Paid, &stats.Unpaid, &stats.Overdue, &stats.TotalAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("invoice summary: %w", err)
	}
	return &stats, nil
}

// ShipmentSummary conteos por estado y tonelaje de embarques con salida en el rango.
func (r *AnalyticsRepo) ShipmentSummary(ctx context.Context, from, to time.Time) (*dto.ShipmentStatsDTO, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COUNT(*) FILTER (WHERE status = $5),
			COUNT(*) FILTER (WHERE status = $6),
			COALESCE(SUM(quantity), 0)
		FROM shipments
		WHERE departure_date BETWEEN $1 AND $2`
	var stats dto.ShipmentStatsDTO
	err := r.pool.QueryRow(ctx, query, from, to,
		entity.ShipmentStatusScheduled, entity.ShipmentStatusOnTransit,
		entity.ShipmentStatusArrived, entity.ShipmentStatusCompleted,
	).Scan(
		&stats.Total, &stats.Scheduled, &stats.OnTransit, &stats.Arrived,
		&stats.Completed, &stats.TotalQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("shipment summary: %w", err)
	}
	return &stats, nil
}

// StockSummary totales y conteos por categoría del inventario de oficina.
// low_stock incluye a los agotados (current <= min cubre current = 0).
func (r *AnalyticsRepo) StockSummary(ctx context.Context) (*dto.StockStatsDTO, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE current_stock <= min_stock),
			COUNT(*) FILTER (WHERE current_stock = 0),
			COUNT(*) FILTER (WHERE category = 'office_supplies'),
			COUNT(*) FILTER (WHERE category = 'equipment'),
			COUNT(*) FILTER (WHERE category = 'consumables')
		FROM stock_office`
	var stats dto.StockStatsDTO
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalItems, &stats.LowStock, &stats.OutOfStock,
		&stats.Categories.OfficeSupplies, &stats.Categories.Equipment, &stats.Categories.Consumables,
	)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &stats, nil
}

// DocumentSummary conteos por categoría de documentos corporativos.
func (r *AnalyticsRepo) DocumentSummary(ctx context.Context) (*dto.DocumentStatsDTO, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE category = 'contract'),
			COUNT(*) FILTER (WHERE category = 'report'),
			COUNT(*) FILTER (WHERE category = 'company_doc'),
			COUNT(*) FILTER (WHERE category = 'other')
		FROM documents`
	var stats dto.DocumentStatsDTO
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Contracts, &stats.Reports, &stats.CompanyDocs, &stats.Other,
	)
	if err != nil {
		return nil, fmt.Errorf("document summary: %w", err)
	}
	return &stats, nil
}

// ShipmentTrend conteo mensual de embarques de los últimos `months` meses
// (incluido el actual), en orden cronológico. Los meses sin embarques salen
// con cero: el gráfico del frontend espera la serie completa.
func (r *AnalyticsRepo) ShipmentTrend(ctx context.Context, months int) ([]dto.TrendPointDTO, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

	query := `
		SELECT to_char(departure_date, 'YYYY-MM'), COUNT(*)
		FROM shipments
		WHERE departure_date >= $1
		GROUP BY 1`
	rows, err := r.pool.Query(ctx, query, start)
	if err != nil {
		return nil, fmt.Errorf("shipment trend: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var month string
		var count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		counts[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	points := make([]dto.TrendPointDTO, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		points = append(points, dto.TrendPointDTO{Month: month, Shipments: counts[month]})
	}
	return points, nil
}
