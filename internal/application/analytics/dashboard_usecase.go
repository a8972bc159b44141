// Package analytics contiene el caso de uso del dashboard del portal:
// agregados de facturas, embarques, stock y documentos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

const trendMonths = 6 // meses del gráfico de embarques

// DashboardUseCase genera el resumen del mes en curso para la página de inicio.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco llamadas en paralelo:
//  1. InvoiceSummary(mes)  → conteos por estado + monto
//  2. ShipmentSummary(mes) → conteos por estado + tonelaje
//  3. StockSummary         → ítems bajos/agotados por categoría
//  4. DocumentSummary      → conteos por categoría
//  5. ShipmentTrend(6)     → serie mensual de embarques
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type invoicesResult struct {
		stats *dto.InvoiceStatsDTO
		err   error
	}
	type shipmentsResult struct {
		stats *dto.ShipmentStatsDTO
		err   error
	}
	type stockResult struct {
		stats *dto.StockStatsDTO
		err   error
	}
	type documentsResult struct {
		stats *dto.DocumentStatsDTO
		err   error
	}
	type trendResult struct {
		points []dto.TrendPointDTO
		err    error
	}

	invoicesCh := make(chan invoicesResult, 1)
	shipmentsCh := make(chan shipmentsResult, 1)
	stockCh := make(chan stockResult, 1)
	documentsCh := make(chan documentsResult, 1)
	trendCh := make(chan trendResult, 1)

	go func() {
		stats, err := uc.analyticsRepo.InvoiceSummary(ctx, monthStart, monthEnd)
		invoicesCh <- invoicesResult{stats, err}
	}()
	go func() {
		stats, err := uc.analyticsRepo.ShipmentSummary(ctx, monthStart, monthEnd)
		shipmentsCh <- shipmentsResult{stats, err}
	}()
	go func() {
		stats, err := uc.analyticsRepo.StockSummary(ctx)
		stockCh <- stockResult{stats, err}
	}()
	go func() {
		stats, err := uc.analyticsRepo.DocumentSummary(ctx)
		documentsCh <- documentsResult{stats, err}
	}()
	go func() {
		points, err := uc.analyticsRepo.ShipmentTrend(ctx, trendMonths)
		trendCh <- trendResult{points, err}
	}()

	invoices := <-invoicesCh
	shipments := <-shipmentsCh
	stock := <-stockCh
	documents := <-documentsCh
	trend := <-trendCh

	if invoices.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de facturas: %w", invoices.err)
	}
	if shipments.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de embarques: %w", shipments.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de stock: %w", stock.err)
	}
	if documents.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de documentos: %w", documents.err)
	}
	if trend.err != nil {
		return nil, fmt.Errorf("dashboard: tendencia de embarques: %w", trend.err)
	}

	return &dto.DashboardSummaryDTO{
		Invoices:      *invoices.stats,
		Shipments:     *shipments.stats,
		Stock:         *stock.stats,
		Documents:     *documents.stats,
		ShipmentTrend: trend.points,
		PeriodLabel:   periodLabel(now),
	}, nil
}

// InvoiceStats devuelve los agregados históricos de facturación
// (conteos por estado + monto total), sin acotar por mes.
func (uc *DashboardUseCase) InvoiceStats(ctx context.Context) (*dto.InvoiceStatsDTO, error) {
	from, to := allTimeRange()
	stats, err := uc.analyticsRepo.InvoiceSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("estadísticas de facturas: %w", err)
	}
	return stats, nil
}

// ShipmentStats devuelve los agregados históricos de embarques
// (conteos por estado + tonelaje total).
func (uc *DashboardUseCase) ShipmentStats(ctx context.Context) (*dto.ShipmentStatsDTO, error) {
	from, to := allTimeRange()
	stats, err := uc.analyticsRepo.ShipmentSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("estadísticas de embarques: %w", err)
	}
	return stats, nil
}

// StockStats devuelve los agregados actuales de stock (totales, bajos,
// agotados y conteos por categoría).
func (uc *DashboardUseCase) StockStats(ctx context.Context) (*dto.StockStatsDTO, error) {
	stats, err := uc.analyticsRepo.StockSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("estadísticas de stock: %w", err)
	}
	return stats, nil
}

// allTimeRange devuelve un rango que cubre todo el histórico.
func allTimeRange() (time.Time, time.Time) {
	return time.Time{}, time.Now().Add(24 * time.Hour)
}

// periodLabel devuelve una etiqueta legible del mes, ej: "September 2026".
func periodLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}
