package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// generateFlags holds all CLI flags.
type generateFlags struct {
	templates string
	data      string
	images    string
	out       string
	photoExt  string
	config    string
	workers   int
	timeout   string
	keepTmp   bool
	quiet     bool
	verbose   bool
	debug     bool
}

// defaultOutDir mirrors the historical default of the tool.
const defaultOutDir = "./id_gen_out"

// parseFlags parses CLI flags. args excludes the program name.
func parseFlags(args []string) (*generateFlags, error) {
	fs := flag.NewFlagSet("idgen", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVar(&f.templates, "template", "", "directory holding front.svg and back.svg")
	fs.StringVar(&f.data, "data", "", "roster file (.csv or .xlsx)")
	fs.StringVar(&f.images, "images", "", "directory of student photos")
	fs.StringVarP(&f.out, "out", "o", "", "output directory (default \"./id_gen_out\")")
	fs.StringVar(&f.photoExt, "photo-ext", "", "photo file extension (default \".jpg\")")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page rendering timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.keepTmp, "keep-tmp", false, "keep intermediate page PDFs under <out>/tmp")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-record timing")
	fs.BoolVar(&f.debug, "debug", false, "enable debug output")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}

// printUsage writes the usage text.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `idgen %s - bulk generate student ID cards

Usage:
  idgen --template DIR --data FILE --images DIR [flags]

Produces one two-sided card PDF per roster record at <out>/<ID>.pdf.
Records with an empty photo reference are skipped and reported.

Flags:
%s`, Version, fs.FlagUsages())
}
