package repository

import "github.com/jhoicas/tradeportal-api/internal/domain/entity"

// StockFilters filtros opcionales para listar stock de oficina.
type StockFilters struct {
	Category entity.StockCategory // vacío = todas
	Location string               // vacío = todas
	Search   string               // substring sobre item_name o notes
	LowStock bool                 // solo ítems con current_stock <= min_stock
}

// StockRepository define el puerto de persistencia para StockOffice.
// Los GetBy* devuelven (nil, nil) cuando la fila no existe.
type StockRepository interface {
	Create(item *entity.StockOffice) error
	GetByID(id string) (*entity.StockOffice, error)
	List(f StockFilters) ([]*entity.StockOffice, error)
	ListLowStock() ([]*entity.StockOffice, error)
	Update(item *entity.StockOffice) error
	// SetQuantity sobreescritura absoluta de current_stock; estampa last_updated_by.
	// Devuelve la fila actualizada, nil si el id no existe.
	SetQuantity(id string, quantity int, userID string) (*entity.StockOffice, error)
	// AdjustQuantity aplica el delta con piso en cero de forma atómica
	// (GREATEST(0, current_stock + delta) en el servidor, sin read-modify-write).
	// Devuelve la fila actualizada, nil si el id no existe.
	AdjustQuantity(id string, delta int, userID string) (*entity.StockOffice, error)
	// Delete falla con ErrNotFound si el id no existe (borrado ruidoso).
	Delete(id string) error
	// Locations devuelve las ubicaciones distintas registradas, ordenadas.
	Locations() ([]string, error)
}
