package dto

// TrendPointDTO punto de la serie mensual de embarques.
type TrendPointDTO struct {
	Month     string `json:"month"` // "2025-09"
	Shipments int    `json:"shipments"`
}

// DashboardSummaryDTO resumen del mes en curso para la página de inicio.
type DashboardSummaryDTO struct {
	Invoices      InvoiceStatsDTO  `json:"invoices"`
	Shipments     ShipmentStatsDTO `json:"shipments"`
	Stock         StockStatsDTO    `json:"stock"`
	Documents     DocumentStatsDTO `json:"documents"`
	ShipmentTrend []TrendPointDTO  `json:"shipment_trend"`
	PeriodLabel   string           `json:"period_label"` // ej. "September 2026"
}
