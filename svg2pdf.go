package idgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Madison-Country-Day-School/id-gen/internal/fileutil"
)

// Card page dimensions. The SVG templates are printed at a fixed card
// size rather than their native viewbox: 323x204 CSS pixels, converted
// to inches for Chrome's print surface.
const (
	cardWidthPx      = 323.0
	cardHeightPx     = 204.0
	cssPixelsPerInch = 96.0
)

// documentRasterizer abstracts SVG to PDF conversion to enable testing
// without a browser.
type documentRasterizer interface {
	RasterizeToFile(ctx context.Context, svg, outPath string) error
	Close() error
}

// Compile-time interface check.
var _ documentRasterizer = (*rodRasterizer)(nil)

// rodRasterizer renders SVG markup to single-page card PDFs using
// headless Chrome via go-rod. Rod automatically downloads Chromium on
// first run if not found.
type rodRasterizer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRasterizer creates a rodRasterizer with the given timeout.
func newRodRasterizer(timeout time.Duration) *rodRasterizer {
	return &rodRasterizer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRasterizer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRasterizer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RasterizeToFile renders the SVG markup and writes a one-page PDF at
// the fixed card size to outPath. Deterministic for identical markup.
func (r *rodRasterizer) RasterizeToFile(ctx context.Context, svg, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.ensureBrowser(); err != nil {
		return err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(svg, "svg")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFRender, err)
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	reader, err := page.PDF(cardPDFOptions())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFRender, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFRender, err)
	}

	// #nosec G306 -- intermediate page PDFs are meant to be readable
	if err := os.WriteFile(outPath, pdfBuf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// cardPDFOptions constructs proto.PagePrintToPDF for the fixed card size.
func cardPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(cardWidthPx / cssPixelsPerInch),
		PaperHeight:     floatPtr(cardHeightPx / cssPixelsPerInch),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
