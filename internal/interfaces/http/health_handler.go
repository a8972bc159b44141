package http

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradeportal-api/internal/application/shipping"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler reporta el estado del servicio y sus dependencias.
type HealthHandler struct {
	pool        *pgxpool.Pool
	storage     shipping.ObjectStorage
	version     string
	environment string
	startedAt   time.Time
}

// NewHealthHandler construye el handler.
func NewHealthHandler(pool *pgxpool.Pool, storage shipping.ObjectStorage, version, environment string) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		storage:     storage,
		version:     version,
		environment: environment,
		startedAt:   time.Now(),
	}
}

type dependencyStatus struct {
	Status string `json:"status"` // ok | error
	Error  string `json:"error,omitempty"`
}

type memoryInfo struct {
	Used  string `json:"used"`
	Total string `json:"total"`
}

type systemInfo struct {
	Uptime    string     `json:"uptime"`
	Memory    memoryInfo `json:"memory"`
	GoVersion string     `json:"goVersion"`
}

type healthResponse struct {
	Status      string                      `json:"status"` // ok | degraded
	Timestamp   string                      `json:"timestamp"`
	Version     string                      `json:"version"`
	Environment string                      `json:"environment"`
	Services    map[string]dependencyStatus `json:"services"`
	System      systemInfo                  `json:"system"`
}

// Check verifica DB y bucket. Devuelve 200 con status ok, o 503 con degraded
// si alguna dependencia falla.
// GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	services := map[string]dependencyStatus{}
	healthy := true

	if err := h.pool.Ping(ctx); err != nil {
		services["database"] = dependencyStatus{Status: "error", Error: err.Error()}
		healthy = false
	} else {
		services["database"] = dependencyStatus{Status: "ok"}
	}

	if err := h.storage.Ping(ctx); err != nil {
		services["storage"] = dependencyStatus{Status: "error", Error: err.Error()}
		healthy = false
	} else {
		services["storage"] = dependencyStatus{Status: "ok"}
	}

	// Auth no tiene dependencia externa (JWT firmado localmente)
	services["auth"] = dependencyStatus{Status: "ok"}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     h.version,
		Environment: h.environment,
		Services:    services,
		System: systemInfo{
			Uptime: time.Since(h.startedAt).Round(time.Second).String(),
			Memory: memoryInfo{
				Used:  formatBytes(mem.Alloc),
				Total: formatBytes(mem.Sys),
			},
			GoVersion: runtime.Version(),
		},
	}
	if !healthy {
		resp.Status = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// formatBytes devuelve una representación legible (MB) de un tamaño en bytes.
func formatBytes(b uint64) string {
	const mb = 1 << 20
	return fmt.Sprintf("%.1f MB", float64(b)/mb)
}
