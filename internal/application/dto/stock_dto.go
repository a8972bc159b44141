package dto

// CreateStockRequest body para POST /api/stock.
type CreateStockRequest struct {
	ItemName     string `json:"item_name"`
	Category     string `json:"category"` // office_supplies | equipment | consumables
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Unit         string `json:"unit"`
	Location     string `json:"location"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateStockRequest body para PUT /api/stock/:id. Patch parcial de los
// datos del ítem (no de la cantidad: para eso están set/adjust).
type UpdateStockRequest struct {
	ItemName *string `json:"item_name,omitempty"`
	Category *string `json:"category,omitempty"`
	MinStock *int    `json:"min_stock,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// SetStockQuantityRequest body para PUT /api/stock/:id/quantity (absoluto).
type SetStockQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// AdjustStockRequest body para POST /api/stock/:id/adjust (relativo).
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

// StockResponse ítem de stock en respuestas. Status es derivado, nunca
// persistido. AppliedDelta != RequestedDelta señala que el ajuste recortó en cero.
type StockResponse struct {
	ID                string `json:"id"`
	ItemName          string `json:"item_name"`
	Category          string `json:"category"`
	CurrentStock      int    `json:"current_stock"`
	MinStock          int    `json:"min_stock"`
	Unit              string `json:"unit"`
	Location          string `json:"location"`
	Notes             string `json:"notes,omitempty"`
	Status            string `json:"status"` // out_of_stock | low_stock | normal
	LastUpdatedBy     string `json:"last_updated_by"`
	LastUpdatedByName string `json:"last_updated_by_name,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`

	RequestedDelta *int `json:"requested_delta,omitempty"`
	AppliedDelta   *int `json:"applied_delta,omitempty"`
}

// StockStatsDTO agregados de stock para el dashboard.
type StockStatsDTO struct {
	TotalItems int `json:"total_items"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
	Categories struct {
		OfficeSupplies int `json:"office_supplies"`
		Equipment      int `json:"equipment"`
		Consumables    int `json:"consumables"`
	} `json:"categories"`
}
