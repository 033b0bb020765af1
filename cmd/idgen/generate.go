package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	idgen "github.com/Madison-Country-Day-School/id-gen"
	"github.com/Madison-Country-Day-School/id-gen/internal/config"
	"github.com/Madison-Country-Day-School/id-gen/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrMissingTemplates = errors.New("no template directory specified (--template)")
	ErrMissingData      = errors.New("no roster file specified (--data)")
	ErrMissingImages    = errors.New("no images directory specified (--images)")
	ErrPathNotFound     = errors.New("path does not exist")
	ErrInvalidTimeout   = errors.New("invalid timeout")
)

// resolveConfig builds the effective run configuration.
// Precedence: CLI flags > IDGEN_* env vars > config file > defaults.
func resolveConfig(flags *generateFlags, env *Environment) (*config.Config, error) {
	if !flags.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	envCfg := loadEnvConfig()

	configPath := flags.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if cfg.Paths.Out == "" {
		cfg.Paths.Out = defaultOutDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.templates != "" {
		cfg.Paths.Templates = flags.templates
	}
	if flags.data != "" {
		cfg.Paths.Data = flags.data
	}
	if flags.images != "" {
		cfg.Paths.Images = flags.images
	}
	if flags.out != "" {
		cfg.Paths.Out = flags.out
	}
	if flags.photoExt != "" {
		cfg.Photos.Ext = flags.photoExt
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.keepTmp {
		cfg.KeepTmp = true
	}
}

// serviceOptions translates config into Service options.
func serviceOptions(cfg *config.Config) ([]idgen.Option, error) {
	if cfg.Timeout == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil || d <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, cfg.Timeout)
	}
	return []idgen.Option{idgen.WithTimeout(d)}, nil
}

// runGenerate orchestrates the full run: validate paths, load the
// shared templates, read the roster, dispatch the batch, and report.
func runGenerate(ctx context.Context, cfg *config.Config, flags *generateFlags, pool Pool, env *Environment) error {
	start := env.Now()

	if cfg.Paths.Templates == "" {
		return ErrMissingTemplates
	}
	if cfg.Paths.Data == "" {
		return ErrMissingData
	}
	if cfg.Paths.Images == "" {
		return ErrMissingImages
	}
	if !fileutil.DirExists(cfg.Paths.Images) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, cfg.Paths.Images)
	}

	if flags.debug {
		fmt.Fprintln(env.Stderr, "Debug mode enabled")
		fmt.Fprintf(env.Stderr, "templates: %s\n", cfg.Paths.Templates)
		fmt.Fprintf(env.Stderr, "data: %s\n", cfg.Paths.Data)
		fmt.Fprintf(env.Stderr, "images: %s\n", cfg.Paths.Images)
		fmt.Fprintf(env.Stderr, "out: %s\n", cfg.Paths.Out)
	}

	// Batch-fatal: nothing can proceed without the template pair.
	templates, err := idgen.LoadTemplates(cfg.Paths.Templates)
	if err != nil {
		return err
	}

	if flags.debug {
		fmt.Fprintf(env.Stderr, "front template:\n%s\n", templates.Front)
		fmt.Fprintf(env.Stderr, "back template:\n%s\n", templates.Back)
	}

	if err := fileutil.EnsureDir(filepath.Join(cfg.Paths.Out, idgen.TmpDirName)); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	jobs, malformed, err := readRoster(cfg.Paths.Data)
	if err != nil {
		return err
	}

	warnDuplicateIDs(jobs, env.Stderr)

	input := idgen.Input{
		Templates:  templates,
		ImagesRoot: cfg.Paths.Images,
		OutputRoot: cfg.Paths.Out,
		PhotoExt:   cfg.Photos.Ext,
		KeepTmp:    cfg.KeepTmp,
	}

	results := generateBatch(ctx, pool, jobs, input)
	results = append(malformed, results...)

	summary := summarize(results)
	printResults(results, flags, env)
	warnUnmatchedTokens(results, env.Stderr)

	if !flags.quiet {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, renderSummaryTable(summary, env.Now().Sub(start)))
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed", summary.Failed)
	}
	return nil
}

// readRoster drains the record source, splitting rows into generation
// jobs and per-row malformed results. Malformed rows are attributable
// and non-fatal; only failing to open the source aborts the run.
func readRoster(path string) (jobs []RecordJob, malformed []GenerationResult, err error) {
	src, err := idgen.OpenRoster(path)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return jobs, malformed, nil
		}
		if err != nil {
			// Row-level read errors are malformed rows, not fatal.
			if errors.Is(err, idgen.ErrMalformedRecord) {
				malformed = append(malformed, GenerationResult{Err: err})
				continue
			}
			return nil, nil, err
		}

		rec, err := idgen.ParseRecord(row)
		if err != nil {
			malformed = append(malformed, GenerationResult{RowIndex: row.Index, Err: err})
			continue
		}
		jobs = append(jobs, RecordJob{RowIndex: row.Index, Record: rec})
	}
}

// warnDuplicateIDs reports roster IDs that appear more than once.
// Duplicates are not errors: the later record's card silently
// overwrites the earlier one's, so the operator should know.
func warnDuplicateIDs(jobs []RecordJob, w io.Writer) {
	seen := make(map[string]int, len(jobs))
	for _, j := range jobs {
		if j.Record.ID == "" || j.Record.PhotoRef == "" {
			continue
		}
		seen[j.Record.ID]++
	}
	for _, j := range jobs {
		if seen[j.Record.ID] > 1 {
			fmt.Fprintf(w, "warning: ID %s appears %d times; later cards overwrite earlier ones\n",
				j.Record.ID, seen[j.Record.ID])
			seen[j.Record.ID] = 0 // warn once per ID
		}
	}
}

// printResults outputs per-record outcomes using the environment writers.
func printResults(results []GenerationResult, flags *generateFlags, env *Environment) {
	for _, r := range results {
		if r.Err != nil {
			if r.RowIndex > 0 {
				fmt.Fprintf(env.Stderr, "FAILED row %d: %v\n", r.RowIndex, r.Err)
			} else {
				fmt.Fprintf(env.Stderr, "FAILED: %v\n", r.Err)
			}
			continue
		}

		if flags.quiet {
			continue
		}

		if r.Outcome == idgen.OutcomeSkipped {
			fmt.Fprintf(env.Stdout, "Student %s does not have a photo. Skipping...\n", r.Record.FullName())
			continue
		}

		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Record.ID, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}
}

// warnUnmatchedTokens reports template tokens that matched in no record
// across the entire run. A token missing from one record's markup is
// normal (templates may omit tokens); a token that never matches
// anywhere usually means a typo in template authoring.
func warnUnmatchedTokens(results []GenerationResult, w io.Writer) {
	var created int
	misses := make(map[string]int)
	for _, r := range results {
		if r.Err != nil || r.Outcome != idgen.OutcomeCreated {
			continue
		}
		created++
		for _, token := range r.UnmatchedTokens {
			misses[token]++
		}
	}
	if created == 0 {
		return
	}
	for _, token := range []string{idgen.TokenName, idgen.TokenYear, idgen.TokenID, idgen.TokenPhoto, idgen.TokenBarcode} {
		if misses[token] == created {
			fmt.Fprintf(w, "warning: template token %q never matched in any template\n", token)
		}
	}
}
