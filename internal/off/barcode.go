package off

// barcodeLengths are the accepted EAN/UPC/GTIN digit counts.
var barcodeLengths = map[int]struct{}{
	8:  {}, // EAN-8
	12: {}, // UPC-A
	13: {}, // EAN-13
	14: {}, // GTIN-14
}

// ValidBarcode reports whether code is an all-digit string of a supported
// barcode length. Validation happens client-side so malformed input is
// rejected before any network call.
func ValidBarcode(code string) bool {
	if _, ok := barcodeLengths[len(code)]; !ok {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
