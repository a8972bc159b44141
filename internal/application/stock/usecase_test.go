package stock

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

type fakeStockRepo struct {
	items map[string]*entity.StockOffice
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: map[string]*entity.StockOffice{}}
}

func (r *fakeStockRepo) Create(item *entity.StockOffice) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeStockRepo) GetByID(id string) (*entity.StockOffice, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeStockRepo) List(f repository.StockFilters) ([]*entity.StockOffice, error) {
	out := []*entity.StockOffice{}
	for _, item := range r.items {
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.LowStock && !item.IsLowStock() {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeStockRepo) ListLowStock() ([]*entity.StockOffice, error) {
	return r.List(repository.StockFilters{LowStock: true})
}

func (r *fakeStockRepo) Update(item *entity.StockOffice) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeStockRepo) SetQuantity(id string, quantity int, userID string) (*entity.StockOffice, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	item.CurrentStock = quantity
	item.LastUpdatedBy = userID
	cp := *item
	return &cp, nil
}

func (r *fakeStockRepo) AdjustQuantity(id string, delta int, userID string) (*entity.StockOffice, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	item.CurrentStock = entity.ClampQuantity(item.CurrentStock, delta)
	item.LastUpdatedBy = userID
	cp := *item
	return &cp, nil
}

func (r *fakeStockRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeStockRepo) Locations() ([]string, error) {
	seen := map[string]bool{}
	for _, item := range r.items {
		if item.Location != "" {
			seen[item.Location] = true
		}
	}
	out := make([]string, 0, len(seen))
	for loc := range seen {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out, nil
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func createItem(t *testing.T, uc *StockUseCase, current, min int) *dto.StockResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), "user-1", dto.CreateStockRequest{
		ItemName:     "Papel A4",
		Category:     "office_supplies",
		CurrentStock: current,
		MinStock:     min,
		Unit:         "resma",
		Location:     "Jakarta HQ",
	})
	require.NoError(t, err)
	return resp
}

func TestStockCreate_EstadoDerivado(t *testing.T) {
	uc := NewStockUseCase(newFakeStockRepo())

	resp := createItem(t, uc, 10, 5)
	assert.Equal(t, "normal", resp.Status)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateStockRequest{
		ItemName: "Tóner", Category: "electrodomésticos", CurrentStock: 1, MinStock: 1, Unit: "ud",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockAdjust_RecorteEnCero(t *testing.T) {
	repo := newFakeStockRepo()
	uc := NewStockUseCase(repo)

	item := createItem(t, uc, 3, 5)

	resp, err := uc.Adjust(context.Background(), item.ID, "user-2", dto.AdjustStockRequest{Delta: -10})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CurrentStock)
	assert.Equal(t, "out_of_stock", resp.Status)
	// El recorte queda visible: se pidió -10 pero solo había 3.
	require.NotNil(t, resp.RequestedDelta)
	require.NotNil(t, resp.AppliedDelta)
	assert.Equal(t, -10, *resp.RequestedDelta)
	assert.Equal(t, -3, *resp.AppliedDelta)
	assert.Equal(t, "user-2", resp.LastUpdatedBy)
}

func TestStockAdjust_DeltaPositivo(t *testing.T) {
	uc := NewStockUseCase(newFakeStockRepo())

	item := createItem(t, uc, 2, 5)
	resp, err := uc.Adjust(context.Background(), item.ID, "user-1", dto.AdjustStockRequest{Delta: 8})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.CurrentStock)
	assert.Equal(t, 8, *resp.AppliedDelta)
	assert.Equal(t, "normal", resp.Status)
}

func TestStockAdjust_DeltaCero(t *testing.T) {
	uc := NewStockUseCase(newFakeStockRepo())
	item := createItem(t, uc, 2, 5)

	_, err := uc.Adjust(context.Background(), item.ID, "user-1", dto.AdjustStockRequest{Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockSetQuantity_Idempotente(t *testing.T) {
	uc := NewStockUseCase(newFakeStockRepo())
	item := createItem(t, uc, 3, 5)

	first, err := uc.SetQuantity(context.Background(), item.ID, "user-1", dto.SetStockQuantityRequest{Quantity: 7})
	require.NoError(t, err)
	second, err := uc.SetQuantity(context.Background(), item.ID, "user-1", dto.SetStockQuantityRequest{Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, first.CurrentStock, second.CurrentStock)
	assert.Equal(t, 7, second.CurrentStock)

	_, err = uc.SetQuantity(context.Background(), item.ID, "user-1", dto.SetStockQuantityRequest{Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockUpdate_NoTocaCantidad(t *testing.T) {
	uc := NewStockUseCase(newFakeStockRepo())
	item := createItem(t, uc, 3, 5)

	name := "Papel A4 80g"
	resp, err := uc.Update(context.Background(), item.ID, "user-3", dto.UpdateStockRequest{ItemName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, resp.ItemName)
	assert.Equal(t, 3, resp.CurrentStock)
	assert.Equal(t, "user-3", resp.LastUpdatedBy)
}

func TestStockListLowStock(t *testing.T) {
	uc := NewStockUseCase(newFakeStockRepo())
	createItem(t, uc, 10, 5)        // normal
	low := createItem(t, uc, 3, 5)  // low_stock
	zero := createItem(t, uc, 0, 5) // out_of_stock

	items, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	ids := []string{items[0].ID, items[1].ID}
	assert.Contains(t, ids, low.ID)
	assert.Contains(t, ids, zero.ID)
}
