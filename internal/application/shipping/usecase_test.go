package shipping

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
	"github.com/jhoicas/tradeportal-api/pkg/logger"
)

type fakeShipmentRepo struct {
	shipments map[string]*entity.Shipment
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: map[string]*entity.Shipment{}}
}

func (r *fakeShipmentRepo) Create(s *entity.Shipment) error {
	for _, existing := range r.shipments {
		if existing.Code == s.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *s
	r.shipments[s.ID] = &cp
	return nil
}

func (r *fakeShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	s, ok := r.shipments[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Documents = append([]entity.ShipmentDocument(nil), s.Documents...)
	return &cp, nil
}

func (r *fakeShipmentRepo) List(f repository.ShipmentFilters, limit, offset int) ([]*entity.Shipment, error) {
	out := []*entity.Shipment{}
	for _, s := range r.shipments {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeShipmentRepo) Update(s *entity.Shipment) error {
	if _, ok := r.shipments[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.shipments[s.ID] = &cp
	return nil
}

func (r *fakeShipmentRepo) SetStatus(id string, status entity.ShipmentStatus, arrivalDate *time.Time) error {
	s, ok := r.shipments[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	if arrivalDate != nil {
		s.ArrivalDate = arrivalDate
	}
	return nil
}

func (r *fakeShipmentRepo) AppendDocument(id string, doc entity.ShipmentDocument) error {
	s, ok := r.shipments[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Documents = append(s.Documents, doc)
	return nil
}

func (r *fakeShipmentRepo) RemoveDocument(id, url string) error {
	s, ok := r.shipments[id]
	if !ok {
		return domain.ErrNotFound
	}
	kept := s.Documents[:0:0]
	for _, doc := range s.Documents {
		if doc.URL != url {
			kept = append(kept, doc)
		}
	}
	s.Documents = kept
	return nil
}

func (r *fakeShipmentRepo) Delete(id string) error {
	if _, ok := r.shipments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.shipments, id)
	return nil
}

func (r *fakeShipmentRepo) LastCode(year int) (string, error) {
	prefix := fmt.Sprintf("SHIP-%d-", year)
	last := ""
	for _, s := range r.shipments {
		if len(s.Code) > len(prefix) && s.Code[:len(prefix)] == prefix && s.Code > last {
			last = s.Code
		}
	}
	return last, nil
}

var _ repository.ShipmentRepository = (*fakeShipmentRepo)(nil)

// fakeInvoiceSetter solo implementa lo que el caso de uso de embarques toca
// de facturas: lookup por id y el cambio de estado al completar.
type fakeInvoiceSetter struct {
	invoices   map[string]*entity.Invoice
	setStatus  []string
	failStatus error
}

func newFakeInvoiceSetter(ids ...string) *fakeInvoiceSetter {
	f := &fakeInvoiceSetter{invoices: map[string]*entity.Invoice{}}
	for _, id := range ids {
		f.invoices[id] = &entity.Invoice{ID: id, Status: entity.InvoiceStatusUnpaid}
	}
	return f
}

func (f *fakeInvoiceSetter) Create(*entity.Invoice) error { return nil }
func (f *fakeInvoiceSetter) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv, nil
}
func (f *fakeInvoiceSetter) List(repository.InvoiceFilters, int, int) ([]*entity.Invoice, error) {
	return nil, nil
}
func (f *fakeInvoiceSetter) ListByStatuses([]entity.InvoiceStatus) ([]*entity.Invoice, error) {
	return nil, nil
}
func (f *fakeInvoiceSetter) Update(*entity.Invoice) error { return nil }
func (f *fakeInvoiceSetter) SetStatus(id string, status entity.InvoiceStatus) error {
	if f.failStatus != nil {
		return f.failStatus
	}
	inv, ok := f.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	f.setStatus = append(f.setStatus, id)
	return nil
}
func (f *fakeInvoiceSetter) Delete(string) error            { return nil }
func (f *fakeInvoiceSetter) LastNumber(int) (string, error) { return "", nil }

var _ repository.InvoiceRepository = (*fakeInvoiceSetter)(nil)

type fakeStorage struct {
	objects   map[string][]byte
	uploadErr error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.objects[objectName] = data
	return "https://storage.test/" + objectName, nil
}

func (s *fakeStorage) DeleteByURL(ctx context.Context, url string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, url[len("https://storage.test/"):])
	return nil
}

func (s *fakeStorage) Ping(ctx context.Context) error { return nil }

var _ ObjectStorage = (*fakeStorage)(nil)

func newTestUseCase(invoiceIDs ...string) (*ShipmentUseCase, *fakeShipmentRepo, *fakeInvoiceSetter, *fakeStorage) {
	shipRepo := newFakeShipmentRepo()
	invRepo := newFakeInvoiceSetter(invoiceIDs...)
	storage := newFakeStorage()
	uc := NewShipmentUseCase(shipRepo, invRepo, storage, logger.Nop())
	return uc, shipRepo, invRepo, storage
}

func validShipmentRequest() dto.CreateShipmentRequest {
	return dto.CreateShipmentRequest{
		VesselName:    "MV Ocean Star",
		DeparturePort: "Morowali",
		ArrivalPort:   "Lianyungang",
		DepartureDate: "2025-08-10",
		Quantity:      decimal.NewFromInt(55000),
	}
}

func TestShipmentCreate_EstadoInicial(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), "user-1", validShipmentRequest())
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("SHIP-%d-0001", year), resp.Code)
	assert.Equal(t, "Scheduled", resp.Status)
	assert.True(t, resp.CanAdvance)
	assert.Empty(t, resp.Documents)
	assert.Empty(t, resp.ArrivalDate)
}

func TestShipmentCreate_FacturaInexistente(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	req := validShipmentRequest()
	req.InvoiceID = "no-existe"
	_, err := uc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentAdvance_ProgresionCompleta(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	created, err := uc.Create(context.Background(), "user-1", validShipmentRequest())
	require.NoError(t, err)

	want := []string{"On Transit", "Arrived", "Completed"}
	for _, expected := range want {
		resp, err := uc.Advance(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, expected, resp.Status)
	}

	// Completed es terminal.
	_, err = uc.Advance(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestShipmentAdvance_EstampaFechaDeLlegada(t *testing.T) {
	uc, repo, _, _ := newTestUseCase()

	created, err := uc.Create(context.Background(), "user-1", validShipmentRequest())
	require.NoError(t, err)

	_, err = uc.Advance(context.Background(), created.ID) // On Transit
	require.NoError(t, err)
	s, _ := repo.GetByID(created.ID)
	assert.Nil(t, s.ArrivalDate, "On Transit no estampa llegada")

	resp, err := uc.Advance(context.Background(), created.ID) // Arrived
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ArrivalDate)

	// Una fecha ya estampada no se sobreescribe al completar.
	s, _ = repo.GetByID(created.ID)
	stamped := *s.ArrivalDate
	_, err = uc.Advance(context.Background(), created.ID) // Completed
	require.NoError(t, err)
	s, _ = repo.GetByID(created.ID)
	assert.True(t, s.ArrivalDate.Equal(stamped))
}

func TestShipmentSetStatus_SoloPasoSiguiente(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	created, err := uc.Create(context.Background(), "user-1", validShipmentRequest())
	require.NoError(t, err)

	// Saltar dos pasos no está permitido.
	_, err = uc.SetStatus(context.Background(), created.ID, "Arrived")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// El paso siguiente sí.
	resp, err := uc.SetStatus(context.Background(), created.ID, "On Transit")
	require.NoError(t, err)
	assert.Equal(t, "On Transit", resp.Status)

	// Retroceder tampoco.
	_, err = uc.SetStatus(context.Background(), created.ID, "Scheduled")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.SetStatus(context.Background(), created.ID, "Sailing")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShipmentCompletar_MarcaFacturaPagada(t *testing.T) {
	uc, _, invRepo, _ := newTestUseCase("inv-1")

	req := validShipmentRequest()
	req.InvoiceID = "inv-1"
	created, err := uc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)

	var resp *dto.ShipmentResponse
	for i := 0; i < 3; i++ {
		resp, err = uc.Advance(context.Background(), created.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, "Completed", resp.Status)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, entity.InvoiceStatusPaid, invRepo.invoices["inv-1"].Status)
}

func TestShipmentCompletar_FalloDeFacturaNoRevierte(t *testing.T) {
	uc, repo, invRepo, _ := newTestUseCase("inv-1")
	invRepo.failStatus = errors.New("conexión perdida")

	req := validShipmentRequest()
	req.InvoiceID = "inv-1"
	created, err := uc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)

	var resp *dto.ShipmentResponse
	for i := 0; i < 3; i++ {
		resp, err = uc.Advance(context.Background(), created.ID)
		require.NoError(t, err)
	}

	// El embarque queda Completed aunque la factura no pudo marcarse.
	assert.Equal(t, "Completed", resp.Status)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "inv-1")

	s, _ := repo.GetByID(created.ID)
	assert.Equal(t, entity.ShipmentStatusCompleted, s.Status)
	assert.Equal(t, entity.InvoiceStatusUnpaid, invRepo.invoices["inv-1"].Status)
}

func TestShipmentAddDocument(t *testing.T) {
	uc, _, _, storage := newTestUseCase()

	created, err := uc.Create(context.Background(), "user-1", validShipmentRequest())
	require.NoError(t, err)

	resp, err := uc.AddDocument(context.Background(), created.ID, "Bill of Lading", "bl.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "Bill of Lading", resp.Documents[0].Name)
	assert.Equal(t, "application/pdf", resp.Documents[0].Type)
	assert.Contains(t, resp.Documents[0].URL, created.ID)
	assert.Len(t, storage.objects, 1)
}

func TestShipmentAddDocument_FalloDeSubida(t *testing.T) {
	uc, _, _, storage := newTestUseCase()
	storage.uploadErr = errors.New("bucket inaccesible")

	created, err := uc.Create(context.Background(), "user-1", validShipmentRequest())
	require.NoError(t, err)

	_, err = uc.AddDocument(context.Background(), created.ID, "", "bl.pdf", "application/pdf", []byte("x"))
	assert.Error(t, err)

	got, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Documents)
}

func TestShipmentRemoveDocument_BorradoDeBucketBestEffort(t *testing.T) {
	uc, _, _, storage := newTestUseCase()

	created, err := uc.Create(context.Background(), "user-1", validShipmentRequest())
	require.NoError(t, err)
	withDoc, err := uc.AddDocument(context.Background(), created.ID, "COA", "coa.pdf", "application/pdf", []byte("x"))
	require.NoError(t, err)

	storage.deleteErr = errors.New("timeout")
	resp, err := uc.RemoveDocument(context.Background(), created.ID, withDoc.Documents[0].URL)
	require.NoError(t, err)
	// El registro desaparece aunque el objeto no pudo borrarse.
	assert.Empty(t, resp.Documents)
	require.Len(t, resp.Warnings, 1)
}
