package entity

import "time"

// StockCategory categoría de un ítem de stock de oficina. Enum cerrado.
type StockCategory string

const (
	StockCategoryOfficeSupplies StockCategory = "office_supplies"
	StockCategoryEquipment      StockCategory = "equipment"
	StockCategoryConsumables    StockCategory = "consumables"
)

// Valid reporta si la categoría es uno de los valores conocidos.
func (c StockCategory) Valid() bool {
	switch c {
	case StockCategoryOfficeSupplies, StockCategoryEquipment, StockCategoryConsumables:
		return true
	}
	return false
}

// StockStatus clasificación derivada de (current, min). Nunca se persiste:
// se calcula en lectura, así no puede divergir de las cantidades.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusLow        StockStatus = "low_stock"
	StockStatusNormal     StockStatus = "normal"
)

// StockOffice representa un ítem del stock de oficina.
// Invariante: CurrentStock nunca es negativo; un ajuste que lo dejaría por
// debajo de cero se recorta a cero.
type StockOffice struct {
	ID            string
	ItemName      string
	Category      StockCategory
	CurrentStock  int
	MinStock      int
	Unit          string
	Location      string
	Notes         string
	LastUpdatedBy string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Campo de lookup (join con users), no persistido en stock_office.
	LastUpdatedByName string
}

// StockStatus deriva la clasificación del ítem a partir de sus cantidades.
func (s *StockOffice) StockStatus() StockStatus {
	switch {
	case s.CurrentStock == 0:
		return StockStatusOutOfStock
	case s.CurrentStock <= s.MinStock:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// IsLowStock reporta si el ítem está en o por debajo de su mínimo.
func (s *StockOffice) IsLowStock() bool {
	return s.CurrentStock <= s.MinStock
}

// ClampQuantity aplica un delta sobre current con piso en cero.
// Un delta negativo grande recorta silenciosamente a cero ("llevar lo que queda").
func ClampQuantity(current, delta int) int {
	q := current + delta
	if q < 0 {
		return 0
	}
	return q
}
