package idgen

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyID       = errors.New("ID number cannot be empty")
	ErrEmptyTemplate = errors.New("template markup cannot be empty")

	// Batch-fatal input errors: no record can be processed without
	// the shared templates or an open roster.
	ErrTemplateLoad      = errors.New("failed to load template")
	ErrRecordSource      = errors.New("failed to open record source")
	ErrUnsupportedRoster = errors.New("unsupported roster format")

	// Per-record errors: attributable to one record, never fatal
	// to the batch.
	ErrMalformedRecord = errors.New("record does not match expected column shape")
	ErrMissingAsset    = errors.New("photo file missing or unreadable")
	ErrBarcodeEncoding = errors.New("ID number not encodable as Code128")
	ErrPDFRender       = errors.New("PDF rendering failed")
	ErrPDFMerge        = errors.New("PDF merge failed")
	ErrWriteOutput     = errors.New("failed to write output document")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
