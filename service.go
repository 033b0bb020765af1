package idgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Madison-Country-Day-School/id-gen/internal/fileutil"
)

// Service orchestrates the per-record card generation pipeline.
type Service struct {
	cfg        serviceConfig
	photos     photoEncoder
	barcodes   barcodeEncoder
	renderer   templateRenderer
	rasterizer documentRasterizer
	merger     documentMerger
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:      serviceConfig{timeout: defaultTimeout},
		photos:   base64PhotoEncoder{},
		barcodes: code128Encoder{},
		renderer: exactTokenRenderer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create rasterizer and merger if not injected (e.g., by tests)
	if s.rasterizer == nil {
		s.rasterizer = newRodRasterizer(s.cfg.timeout)
	}
	if s.merger == nil {
		s.merger = newPDFCPUMerger()
	}

	return s
}

// Generate produces one student's card from a record.
//
// A record with an empty photo reference yields a skip Result, not an
// error. Any other failure is returned wrapped with the record's ID
// number so callers can attribute it and continue with the rest of the
// batch. On success the merged two-page PDF sits at
// <OutputRoot>/<ID>.pdf; a later record with the same ID silently
// overwrites it.
func (s *Service) Generate(ctx context.Context, rec StudentRecord, in Input) (*Result, error) {
	if err := in.Templates.Validate(); err != nil {
		return nil, err
	}

	// Deliberate skip, e.g. a student absent on picture day.
	if rec.PhotoRef == "" {
		return &Result{Record: rec, Outcome: OutcomeSkipped}, nil
	}

	if rec.ID == "" {
		return nil, fmt.Errorf("%w: record for %s", ErrEmptyID, rec.FullName())
	}

	photoPath := filepath.Join(in.ImagesRoot, rec.Year, rec.PhotoRef+in.photoExt())
	photo, err := s.photos.Encode(photoPath)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}

	code, err := s.barcodes.Encode(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}

	front, frontUnmatched := s.renderer.Render(in.Templates.Front, frontTokenValues(rec, photo))
	back, backUnmatched := s.renderer.Render(in.Templates.Back, backTokenValues(code))

	tmpDir := filepath.Join(in.OutputRoot, TmpDirName)
	if err := fileutil.EnsureDir(tmpDir); err != nil {
		return nil, fmt.Errorf("record %s: %w: %v", rec.ID, ErrWriteOutput, err)
	}

	// Intermediate paths are keyed by ID, so concurrent records never
	// collide. Removed on success and on failure unless KeepTmp is set.
	frontPDF := filepath.Join(tmpDir, rec.ID+"-front.pdf")
	backPDF := filepath.Join(tmpDir, rec.ID+"-back.pdf")
	if !in.KeepTmp {
		defer func() {
			_ = os.Remove(frontPDF)
			_ = os.Remove(backPDF)
		}()
	}

	if err := s.rasterizer.RasterizeToFile(ctx, front, frontPDF); err != nil {
		return nil, fmt.Errorf("record %s: front: %w", rec.ID, err)
	}
	if err := s.rasterizer.RasterizeToFile(ctx, back, backPDF); err != nil {
		return nil, fmt.Errorf("record %s: back: %w", rec.ID, err)
	}

	outPath := filepath.Join(in.OutputRoot, rec.ID+".pdf")
	if err := s.merger.Merge(frontPDF, backPDF, outPath); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}

	return &Result{
		Record:          rec,
		Outcome:         OutcomeCreated,
		OutputPath:      outPath,
		UnmatchedTokens: append(frontUnmatched, backUnmatched...),
	}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.rasterizer != nil {
		return s.rasterizer.Close()
	}
	return nil
}
