// Package idgen bulk-generates printable student ID cards.
//
// Given a roster (CSV or XLSX), a pair of SVG card templates, and a
// directory of student photos, it produces one two-page PDF per student:
// the card front (name, year, ID number, photo) followed by the card
// back (a Code128 barcode of the ID number).
//
// # Quick Start
//
// Create a service, generate a card per record, and close when done:
//
//	svc := idgen.New()
//	defer svc.Close()
//
//	templates, err := idgen.LoadTemplates("templates")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := svc.Generate(ctx, record, idgen.Input{
//	    Templates:  templates,
//	    ImagesRoot: "images",
//	    OutputRoot: "out",
//	})
//
// Records with an empty photo reference are reported as a skip outcome,
// not an error. Any other per-record failure is returned as an error so
// callers can isolate it and keep processing the rest of the roster.
//
// # Pipeline
//
// Each record flows through these stages:
//
//  1. Photo encoding (file bytes to an inline base64 payload)
//  2. Barcode encoding (Code128 bitmap of the ID number, base64 PNG)
//  3. Template rendering (exact-text token substitution into the SVGs)
//  4. Rasterizing via headless Chrome (go-rod) at fixed card dimensions
//  5. Merging front and back pages into the final per-student PDF
//
// # Parallel Processing
//
// For batch generation, use ServicePool to manage multiple browser
// instances:
//
//	pool := idgen.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Generate(ctx, record, input)
//
// # Browser Requirements
//
// Rasterizing requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Set ROD_BROWSER_BIN to use a pre-installed binary, e.g. in containers.
package idgen
