package idgen

import (
	"sort"
	"strings"
)

// Template tokens. Front templates use NAME, YEAR, ID, and PHOTO; back
// templates use BARCODE. Tokens are matched as exact text.
const (
	TokenName    = "<!-- NAME -->"
	TokenYear    = "<!-- YEAR -->"
	TokenID      = "<!-- ID -->"
	TokenPhoto   = "<!-- PHOTO -->"
	TokenBarcode = "<!-- BARCODE -->"
)

// templateRenderer abstracts token substitution to allow fakes in tests.
type templateRenderer interface {
	Render(markup string, values map[string]string) (rendered string, unmatched []string)
}

// Compile-time interface check.
var _ templateRenderer = (*exactTokenRenderer)(nil)

// exactTokenRenderer performs exact-text placeholder substitution.
// Every occurrence of a recognized token is replaced by its value;
// tokens absent from the markup are silent no-ops and are reported in
// the unmatched list so callers can warn when a token never matches
// across an entire run. Values are inserted verbatim, no escaping.
type exactTokenRenderer struct{}

func (exactTokenRenderer) Render(markup string, values map[string]string) (string, []string) {
	var unmatched []string
	pairs := make([]string, 0, 2*len(values))
	for token, value := range values {
		if !strings.Contains(markup, token) {
			unmatched = append(unmatched, token)
			continue
		}
		pairs = append(pairs, token, value)
	}
	// Map iteration order is random; keep the report stable.
	sort.Strings(unmatched)
	if len(pairs) == 0 {
		return markup, unmatched
	}
	// One left-to-right pass. Inserted values are never rescanned, so a
	// value containing another token's text stays verbatim regardless of
	// which tokens the markup carries.
	return strings.NewReplacer(pairs...).Replace(markup), unmatched
}

// frontTokenValues maps front-template tokens to a record's values.
func frontTokenValues(rec StudentRecord, photo string) map[string]string {
	return map[string]string{
		TokenName:  rec.FullName(),
		TokenYear:  rec.Year,
		TokenID:    rec.ID,
		TokenPhoto: photo,
	}
}

// backTokenValues maps back-template tokens to a record's values.
func backTokenValues(barcodePayload string) map[string]string {
	return map[string]string{
		TokenBarcode: barcodePayload,
	}
}
