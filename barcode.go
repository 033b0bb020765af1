package idgen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Barcode rendering constants.
const (
	// barcodeScale is the bitmap magnification applied to the symbol,
	// which is encoded at one pixel per bar module.
	barcodeScale = 10
	// barcodeHeightPx is the fixed height of the rendered bitmap.
	barcodeHeightPx = 150
)

// barcodeEncoder abstracts barcode generation to allow fakes in tests.
type barcodeEncoder interface {
	Encode(id string) (string, error)
}

// Compile-time interface check.
var _ barcodeEncoder = (*code128Encoder)(nil)

// code128Encoder renders an ID number as a Code128 barcode bitmap with
// no human-readable text, PNG-encoded and base64-wrapped for inline SVG
// embedding. Encoding is pure: the same ID always yields byte-identical
// output.
type code128Encoder struct{}

func (code128Encoder) Encode(id string) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}
	symbol, err := code128.Encode(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBarcodeEncoding, id, err)
	}
	scaled, err := barcode.Scale(symbol, symbol.Bounds().Dx()*barcodeScale, barcodeHeightPx)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBarcodeEncoding, id, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBarcodeEncoding, id, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
