package idgen

import (
	"encoding/base64"
	"fmt"
	"os"
)

// photoEncoder abstracts photo loading to allow fakes in tests.
type photoEncoder interface {
	Encode(path string) (string, error)
}

// Compile-time interface check.
var _ photoEncoder = (*base64PhotoEncoder)(nil)

// base64PhotoEncoder reads a photo file and encodes its raw bytes as a
// base64 payload suitable for inline SVG image embedding.
type base64PhotoEncoder struct{}

// Encode reads the file at path and returns its base64 encoding.
// The photo is treated as opaque bytes; no content validation happens
// beyond the file being readable.
func (base64PhotoEncoder) Encode(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path resolved from roster fields
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMissingAsset, path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
