package idgen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Template file names expected inside the templates directory.
const (
	FrontTemplateFile = "front.svg"
	BackTemplateFile  = "back.svg"
)

// DefaultPhotoExt is the photo file extension appended to photo
// references when resolving image paths.
const DefaultPhotoExt = ".jpg"

// TmpDirName is the subdirectory of the output root that holds
// per-record intermediate page documents.
const TmpDirName = "tmp"

// StudentRecord is one roster row. Records are immutable and discarded
// once their card has been produced.
type StudentRecord struct {
	FirstName string
	LastName  string
	Year      string // also used as a path segment under the images root
	ID        string // output file name and barcode payload; unique per run
	PhotoRef  string // photo file name without extension; empty = skip
}

// FullName returns the display name used in templates and skip reports.
func (r StudentRecord) FullName() string {
	return r.FirstName + " " + r.LastName
}

// TemplateSet holds the front and back SVG markup. Loaded once before
// processing begins and shared read-only across all records.
type TemplateSet struct {
	Front string
	Back  string
}

// LoadTemplates reads front.svg and back.svg from dir.
func LoadTemplates(dir string) (*TemplateSet, error) {
	front, err := os.ReadFile(filepath.Join(dir, FrontTemplateFile)) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, filepath.Join(dir, FrontTemplateFile), err)
	}
	back, err := os.ReadFile(filepath.Join(dir, BackTemplateFile)) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, filepath.Join(dir, BackTemplateFile), err)
	}
	return &TemplateSet{Front: string(front), Back: string(back)}, nil
}

// Validate checks that both templates carry markup.
func (t *TemplateSet) Validate() error {
	if t == nil || t.Front == "" || t.Back == "" {
		return ErrEmptyTemplate
	}
	return nil
}

// Input contains per-run generation parameters shared across records.
type Input struct {
	Templates  *TemplateSet
	ImagesRoot string // photos live at <ImagesRoot>/<Year>/<PhotoRef><PhotoExt>
	OutputRoot string // final PDFs at <OutputRoot>/<ID>.pdf, intermediates under <OutputRoot>/tmp
	PhotoExt   string // optional, defaults to DefaultPhotoExt
	KeepTmp    bool   // keep intermediate page PDFs for debugging
}

// photoExt returns the configured photo extension or the default.
func (in Input) photoExt() string {
	if in.PhotoExt == "" {
		return DefaultPhotoExt
	}
	return in.PhotoExt
}

// Outcome classifies the result of processing one record.
type Outcome int

const (
	// OutcomeCreated means a merged card PDF was written.
	OutcomeCreated Outcome = iota
	// OutcomeSkipped means the record had no photo reference and was
	// deliberately skipped with no output.
	OutcomeSkipped
)

// Result holds the outcome of generating one record's card.
type Result struct {
	Record     StudentRecord
	Outcome    Outcome
	OutputPath string // set when Outcome is OutcomeCreated

	// UnmatchedTokens lists template tokens that did not occur in the
	// markup for this record. Callers can intersect these across a run
	// to warn about tokens that never match anywhere.
	UnmatchedTokens []string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-page rasterizing timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("idgen: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}
