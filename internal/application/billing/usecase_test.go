package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

// fakeInvoiceRepo repositorio en memoria para probar el caso de uso sin base
// de datos. duplicatesLeft simula choques del índice único de numeración.
type fakeInvoiceRepo struct {
	invoices       map[string]*entity.Invoice
	duplicatesLeft int
	createCalls    int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.createCalls++
	if r.duplicatesLeft > 0 {
		r.duplicatesLeft--
		return domain.ErrDuplicate
	}
	for _, existing := range r.invoices {
		if existing.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) List(f repository.InvoiceFilters, limit, offset int) ([]*entity.Invoice, error) {
	out := []*entity.Invoice{}
	for _, inv := range r.invoices {
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByStatuses(statuses []entity.InvoiceStatus) ([]*entity.Invoice, error) {
	out := []*entity.Invoice{}
	for _, inv := range r.invoices {
		for _, st := range statuses {
			if inv.Status == st {
				out = append(out, inv)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) SetStatus(id string, status entity.InvoiceStatus) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	if _, ok := r.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) LastNumber(year int) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", year)
	numbers := []string{}
	for _, inv := range r.invoices {
		if strings.HasPrefix(inv.Number, prefix) {
			numbers = append(numbers, inv.Number)
		}
	}
	if len(numbers) == 0 {
		return "", nil
	}
	sort.Strings(numbers)
	return numbers[len(numbers)-1], nil
}

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func validCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerName: "PT Mineral Jaya",
		IssueDate:    "2025-08-01",
		DueDate:      "2025-09-01",
		Items: []dto.InvoiceItemRequest{
			{Description: "Nickel ore 1.8%", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100000)},
		},
		TaxPercent: decimal.NewFromInt(10),
	}
}

func TestInvoiceCreate_PrimeraDelAnio(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	resp, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("INV-%d-0001", year), resp.Number)
	assert.Equal(t, "unpaid", resp.Status)
	// Totales del lado del servidor: 2 × 100000, 10% de impuesto.
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200000)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(220000)), "total %s", resp.Total)
	assert.Equal(t, "Rp220.000", resp.TotalDisplay)
}

func TestInvoiceCreate_NumeracionConsecutiva(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	first, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("INV-%d-0001", year), first.Number)
	assert.Equal(t, fmt.Sprintf("INV-%d-0002", year), second.Number)
}

func TestInvoiceCreate_ReintentaAnteChoqueDeNumero(t *testing.T) {
	repo := newFakeInvoiceRepo()
	repo.duplicatesLeft = 2 // dos choques simulados antes de aceptar
	uc := NewInvoiceUseCase(repo)

	resp, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, repo.createCalls)
	assert.NotEmpty(t, resp.Number)
}

func TestInvoiceCreate_AgotaReintentos(t *testing.T) {
	repo := newFakeInvoiceRepo()
	repo.duplicatesLeft = 5
	uc := NewInvoiceUseCase(repo)

	_, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 3, repo.createCalls)
}

func TestInvoiceCreate_SinLineasCompletas(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	req := validCreateRequest()
	// Todas las líneas incompletas: deben filtrarse y la creación falla.
	req.Items = []dto.InvoiceItemRequest{
		{Description: "", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		{Description: "Sin cantidad", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(100)},
	}
	_, err := uc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceCreate_FechaInvalida(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	req := validCreateRequest()
	req.DueDate = "01/09/2025"
	_, err := uc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUpdate_RecalculaTotales(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	newFee := decimal.NewFromInt(50000)
	resp, err := uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		ExtraFee: &newFee,
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(270000)), "total %s", resp.Total)
}

func TestInvoiceUpdate_PatchParcialNoTocaTotales(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	name := "PT Mineral Sejahtera"
	resp, err := uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		CustomerName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, name, resp.CustomerName)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(220000)))
}

func TestInvoiceSetStatus(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	resp, err := uc.SetStatus(context.Background(), created.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)

	_, err = uc.SetStatus(context.Background(), created.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceAvailableForShipment_ExcluyeOverdue(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	a, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	b, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), a.ID, "paid")
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), b.ID, "overdue")
	require.NoError(t, err)

	available, err := uc.AvailableForShipment(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, a.ID, available[0].ID)
}

func TestInvoiceDelete_NoExiste(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo)

	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
