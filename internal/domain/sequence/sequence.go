// Package sequence implementa la numeración legible de documentos:
// facturas INV-<año>-NNNN y embarques SHIP-<año>-NNNN.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefijos de numeración.
const (
	PrefixInvoice  = "INV"
	PrefixShipment = "SHIP"
)

const seqWidth = 4

// Format arma el número legible: PRE-YYYY-NNNN (consecutivo con ceros a la izquierda).
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, seqWidth, seq)
}

// Next devuelve el número siguiente a `last` dentro del año indicado.
// Si last está vacío, no corresponde al prefijo/año o no parsea, la serie
// arranca en 0001. El consecutivo se toma del sufijo de 4 dígitos.
func Next(prefix string, year int, last string) string {
	seq, ok := parseSeq(prefix, year, last)
	if !ok {
		return Format(prefix, year, 1)
	}
	return Format(prefix, year, seq+1)
}

// parseSeq extrae el consecutivo de un número PRE-YYYY-NNNN del prefijo y año dados.
func parseSeq(prefix string, year int, number string) (int, bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != prefix {
		return 0, false
	}
	if y, err := strconv.Atoi(parts[1]); err != nil || y != year {
		return 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
