// Package billing contiene la aritmética pura de facturación: totales de
// línea, agregación subtotal/impuesto/cargo extra y formato de moneda.
// Ninguna función toca la base de datos; los casos de uso recalculan estos
// valores con cada cambio de items, tax_percent o extra_fee, de modo que los
// montos persistidos siempre son re-derivables de las líneas.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineTotal devuelve quantity * unitPrice.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Totals resultado de ComputeTotals.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// itemComplete reporta si la línea está estructuralmente completa:
// descripción no vacía, cantidad positiva y precio no negativo.
func itemComplete(it entity.InvoiceItem) bool {
	if strings.TrimSpace(it.Description) == "" {
		return false
	}
	if !it.Quantity.GreaterThan(decimal.Zero) {
		return false
	}
	return !it.UnitPrice.LessThan(decimal.Zero)
}

// ComputeTotals agrega las líneas completas de la factura:
//
//	TaxAmount = Subtotal * taxPercent / 100
//	Total     = Subtotal + TaxAmount + extraFee
//
// Las líneas incompletas se descartan antes de sumar.
func ComputeTotals(items []entity.InvoiceItem, taxPercent, extraFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		if !itemComplete(it) {
			continue
		}
		subtotal = subtotal.Add(LineTotal(it.Quantity, it.UnitPrice))
	}
	taxAmount := subtotal.Mul(taxPercent).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount).Add(extraFee),
	}
}

// NormalizeItems descarta las líneas incompletas y recalcula el total de cada
// línea restante (Total = Quantity * UnitPrice), ignorando el valor recibido.
func NormalizeItems(items []entity.InvoiceItem) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, 0, len(items))
	for _, it := range items {
		if !itemComplete(it) {
			continue
		}
		it.Total = LineTotal(it.Quantity, it.UnitPrice)
		out = append(out, it)
	}
	return out
}

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR formatea un monto en rupias para mostrar: separador de miles
// local y sin dígitos fraccionarios, ej. "Rp1.250.000".
func FormatIDR(amount decimal.Decimal) string {
	return idrPrinter.Sprintf("Rp%d", amount.Round(0).IntPart())
}
