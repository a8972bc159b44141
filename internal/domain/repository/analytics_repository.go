package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
)

// AnalyticsRepository consultas read-only de agregados para el dashboard.
// Toma context porque son las consultas más pesadas y el dashboard las
// lanza en paralelo.
type AnalyticsRepository interface {
	InvoiceSummary(ctx context.Context, from, to time.Time) (*dto.InvoiceStatsDTO, error)
	ShipmentSummary(ctx context.Context, from, to time.Time) (*dto.ShipmentStatsDTO, error)
	StockSummary(ctx context.Context) (*dto.StockStatsDTO, error)
	DocumentSummary(ctx context.Context) (*dto.DocumentStatsDTO, error)
	// ShipmentTrend devuelve el conteo mensual de embarques de los últimos
	// `months` meses (incluido el actual), en orden cronológico.
	ShipmentTrend(ctx context.Context, months int) ([]dto.TrendPointDTO, error)
}
