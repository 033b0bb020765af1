package main

import (
	"errors"
	"os"

	idgen "github.com/Madison-Country-Day-School/id-gen"
	"github.com/Madison-Country-Day-School/id-gen/internal/config"
)

// Exit codes for the idgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All records processed, none failed
	ExitGeneral = 1 // General/unexpected error, or some records failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, idgen.ErrBrowserConnect) ||
		errors.Is(err, idgen.ErrPageCreate) ||
		errors.Is(err, idgen.ErrPageLoad) ||
		errors.Is(err, idgen.ErrPDFRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, idgen.ErrTemplateLoad) ||
		errors.Is(err, idgen.ErrRecordSource) ||
		errors.Is(err, idgen.ErrWriteOutput) ||
		errors.Is(err, ErrPathNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, config.ErrInvalidPhotoExt) ||
		errors.Is(err, idgen.ErrUnsupportedRoster) ||
		errors.Is(err, idgen.ErrEmptyTemplate) ||
		errors.Is(err, ErrMissingTemplates) ||
		errors.Is(err, ErrMissingData) ||
		errors.Is(err, ErrMissingImages) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
