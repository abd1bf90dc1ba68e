// Package units defines the closed set of unit-of-measure codes a product
// can be sold in.
package units

// codes is the fixed set of recognized unit-of-measure codes
// (bucket, barrel, bag, bottle, box, ... unit).
var codes = map[string]struct{}{
	"BALD": {}, "BRL": {}, "BOLS": {}, "BOT": {}, "CAJ": {}, "CRR": {},
	"CTON": {}, "CIL": {}, "DOC": {}, "ENV": {}, "FCO": {}, "GL": {},
	"JGO": {}, "KG": {}, "KIT": {}, "LAT": {}, "M": {}, "PQT": {},
	"PAR": {}, "PZ": {}, "SCO": {}, "UND": {},
}

// ordered keeps a stable listing order for API consumers.
var ordered = []string{
	"BALD", "BRL", "BOLS", "BOT", "CAJ", "CRR", "CTON", "CIL", "DOC", "ENV",
	"FCO", "GL", "JGO", "KG", "KIT", "LAT", "M", "PQT", "PAR", "PZ", "SCO", "UND",
}

// IsValid reports whether code is a recognized unit of measure.
func IsValid(code string) bool {
	_, ok := codes[code]
	return ok
}

// All returns every recognized code in stable order.
func All() []string {
	out := make([]string, len(ordered))
	copy(out, ordered)
	return out
}
