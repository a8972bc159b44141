package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

// StockUseCase inventario de oficina: altas, ajustes con piso en cero y
// estado derivado.
type StockUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo}
}

// Create registra un ítem de inventario.
func (uc *StockUseCase) Create(ctx context.Context, userID string, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.ItemName == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	category := entity.StockCategory(in.Category)
	if !category.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.StockOffice{
		ID:            uuid.New().String(),
		ItemName:      in.ItemName,
		Category:      category,
		CurrentStock:  in.CurrentStock,
		MinStock:      in.MinStock,
		Unit:          in.Unit,
		Location:      in.Location,
		Notes:         in.Notes,
		LastUpdatedBy: userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.stockRepo.Create(item); err != nil {
		return nil, err
	}
	return toStockResponse(item, nil, nil), nil
}

// Get devuelve un ítem por id.
func (uc *StockUseCase) Get(ctx context.Context, id string) (*dto.StockResponse, error) {
	item, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(item, nil, nil), nil
}

// List lista ítems con filtros opcionales.
func (uc *StockUseCase) List(ctx context.Context, f repository.StockFilters) ([]dto.StockResponse, error) {
	items, err := uc.stockRepo.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toStockResponse(item, nil, nil))
	}
	return out, nil
}

// ListLowStock devuelve los ítems en low_stock u out_of_stock.
func (uc *StockUseCase) ListLowStock(ctx context.Context) ([]dto.StockResponse, error) {
	items, err := uc.stockRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toStockResponse(item, nil, nil))
	}
	return out, nil
}

// Locations devuelve las ubicaciones registradas (para filtros del frontend).
func (uc *StockUseCase) Locations(ctx context.Context) ([]string, error) {
	return uc.stockRepo.Locations()
}

// Update patch parcial de los datos del ítem. La cantidad no se toca por
// esta vía: para eso están SetQuantity y Adjust.
func (uc *StockUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	item, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.ItemName != nil {
		if *in.ItemName == "" {
			return nil, domain.ErrInvalidInput
		}
		item.ItemName = *in.ItemName
	}
	if in.Category != nil {
		category := entity.StockCategory(*in.Category)
		if !category.Valid() {
			return nil, domain.ErrInvalidInput
		}
		item.Category = category
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.Unit != nil {
		if *in.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Unit = *in.Unit
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}

	item.LastUpdatedBy = userID
	item.UpdatedAt = time.Now()
	if err := uc.stockRepo.Update(item); err != nil {
		return nil, err
	}
	return toStockResponse(item, nil, nil), nil
}

// SetQuantity sobreescritura absoluta de la cantidad. Idempotente: repetir
// la misma cantidad deja el mismo resultado.
func (uc *StockUseCase) SetQuantity(ctx context.Context, id, userID string, in dto.SetStockQuantityRequest) (*dto.StockResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.stockRepo.SetQuantity(id, in.Quantity, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(item, nil, nil), nil
}

// Adjust aplica un delta relativo con piso en cero. La respuesta expone el
// delta pedido y el efectivamente aplicado: si current era 3 y el delta -10,
// la cantidad queda 0 y applied_delta es -3.
func (uc *StockUseCase) Adjust(ctx context.Context, id, userID string, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	before, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.stockRepo.AdjustQuantity(id, in.Delta, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	applied := item.CurrentStock - before.CurrentStock
	requested := in.Delta
	return toStockResponse(item, &requested, &applied), nil
}

// Delete borrado duro. Falla con ErrNotFound si el id no existe.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	return uc.stockRepo.Delete(id)
}

func toStockResponse(item *entity.StockOffice, requestedDelta, appliedDelta *int) *dto.StockResponse {
	return &dto.StockResponse{
		ID:                item.ID,
		ItemName:          item.ItemName,
		Category:          string(item.Category),
		CurrentStock:      item.CurrentStock,
		MinStock:          item.MinStock,
		Unit:              item.Unit,
		Location:          item.Location,
		Notes:             item.Notes,
		Status:            string(item.StockStatus()),
		LastUpdatedBy:     item.LastUpdatedBy,
		LastUpdatedByName: item.LastUpdatedByName,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         item.UpdatedAt.Format(time.RFC3339),
		RequestedDelta:    requestedDelta,
		AppliedDelta:      appliedDelta,
	}
}
