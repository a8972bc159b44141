package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tradeportal-api/internal/domain/billing"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

func item(desc string, qty, price int64) entity.InvoiceItem {
	q := decimal.NewFromInt(qty)
	p := decimal.NewFromInt(price)
	return entity.InvoiceItem{Description: desc, Quantity: q, UnitPrice: p, Total: q.Mul(p)}
}

func TestLineTotal(t *testing.T) {
	got := billing.LineTotal(decimal.NewFromInt(3), decimal.NewFromInt(150000))
	assert.True(t, got.Equal(decimal.NewFromInt(450000)), "LineTotal = quantity * unitPrice")
}

func TestLineTotal_CantidadCero(t *testing.T) {
	got := billing.LineTotal(decimal.Zero, decimal.NewFromInt(99999))
	assert.True(t, got.IsZero())
}

// Sin impuesto ni cargo extra, el total debe ser exactamente la suma de los
// totales de línea.
func TestComputeTotals_SinImpuestoNiCargo(t *testing.T) {
	items := []entity.InvoiceItem{
		item("Nickel ore 1.8%", 2, 100000),
		item("Freight surcharge", 1, 50000),
	}
	got := billing.ComputeTotals(items, decimal.Zero, decimal.Zero)

	want := items[0].Total.Add(items[1].Total)
	assert.True(t, got.Subtotal.Equal(want))
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.Total.Equal(want))
}

// Vector de referencia: un ítem {qty:2, precio:100000}, impuesto 10%, sin
// cargo extra → subtotal 200000, impuesto 20000, total 220000.
func TestComputeTotals_ImpuestoDiezPorciento(t *testing.T) {
	items := []entity.InvoiceItem{item("Nickel ore 1.8%", 2, 100000)}
	got := billing.ComputeTotals(items, decimal.NewFromInt(10), decimal.Zero)

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(200000)), "subtotal: %s", got.Subtotal)
	assert.True(t, got.TaxAmount.Equal(decimal.NewFromInt(20000)), "impuesto: %s", got.TaxAmount)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(220000)), "total: %s", got.Total)
}

func TestComputeTotals_CargoExtra(t *testing.T) {
	items := []entity.InvoiceItem{item("Barging", 1, 300000)}
	got := billing.ComputeTotals(items, decimal.Zero, decimal.NewFromInt(25000))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(325000)))
}

// Las líneas estructuralmente incompletas (sin descripción, cantidad no
// positiva, precio negativo) se descartan antes de sumar.
func TestComputeTotals_DescartaLineasIncompletas(t *testing.T) {
	items := []entity.InvoiceItem{
		item("Nickel ore 1.8%", 2, 100000),
		item("", 5, 1000),                // sin descripción
		item("Cantidad cero", 0, 9000),   // cantidad no positiva
		item("Precio negativo", 1, -500), // precio negativo
	}
	got := billing.ComputeTotals(items, decimal.Zero, decimal.Zero)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(200000)))
}

func TestComputeTotals_SinItems(t *testing.T) {
	got := billing.ComputeTotals(nil, decimal.NewFromInt(11), decimal.Zero)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Total.IsZero())
}

// NormalizeItems ignora el total recibido del cliente y lo recalcula.
func TestNormalizeItems_RecalculaTotal(t *testing.T) {
	in := []entity.InvoiceItem{
		{Description: "Nickel ore", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100000), Total: decimal.NewFromInt(1)}, // total adulterado
		{Description: "", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
	}
	out := billing.NormalizeItems(in)

	assert.Len(t, out, 1)
	assert.True(t, out[0].Total.Equal(decimal.NewFromInt(200000)))
}

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "Rp1.250.000", billing.FormatIDR(decimal.NewFromInt(1250000)))
	assert.Equal(t, "Rp0", billing.FormatIDR(decimal.Zero))
}
