package idgen

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// documentMerger abstracts PDF concatenation to allow fakes in tests.
type documentMerger interface {
	Merge(frontPath, backPath, outPath string) error
}

// Compile-time interface check.
var _ documentMerger = (*pdfcpuMerger)(nil)

// pdfcpuMerger concatenates page documents with pdfcpu: all pages of
// the front document first, then all pages of the back document, with
// internal page order preserved. No reordering, no content inspection.
type pdfcpuMerger struct {
	conf *model.Configuration
}

func newPDFCPUMerger() *pdfcpuMerger {
	conf := model.NewDefaultConfiguration()
	// Chrome-produced PDFs trip strict validation on optional entries.
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfcpuMerger{conf: conf}
}

func (m *pdfcpuMerger) Merge(frontPath, backPath, outPath string) error {
	if err := api.MergeCreateFile([]string{frontPath, backPath}, outPath, false, m.conf); err != nil {
		return fmt.Errorf("%w: %v", ErrPDFMerge, err)
	}
	return nil
}

// PageCount returns the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPDFMerge, err)
	}
	return n, nil
}
