// Package barcode derives the lookup variants for a scanned product code.
package barcode

// Normalized holds the variants of a scanned code used for catalog lookup.
type Normalized struct {
	UPC   string // 12-digit form when the input was an 11-digit UPC-A
	EAN13 string // value matched against the ean13 column
}

// Normalize maps a raw scanned code to its lookup variants.
//
// An 11-digit input is a UPC-A that lost its leading zero during scanning and
// gets exactly one "0" prepended; EAN13 carries that same 12-digit value
// because the catalog stores 12-digit codes in the ean13 column as-is. No
// padding to a true 13-digit EAN is performed — the OR-match in the resolver
// depends on this exact shape. Every other length passes through unchanged,
// and the character set is not validated.
func Normalize(raw string) Normalized {
	if len(raw) == 11 {
		padded := "0" + raw
		return Normalized{UPC: padded, EAN13: padded}
	}
	return Normalized{UPC: raw, EAN13: raw}
}
