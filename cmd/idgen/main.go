// Command idgen bulk-generates student ID cards from an SVG template
// pair, a roster file, and a directory of student photos.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	idgen "github.com/Madison-Country-Day-School/id-gen"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	env := DefaultEnv()
	os.Exit(run(ctx, flags, env))
}

// run resolves configuration, wires the service pool, and delegates to
// runGenerate, mapping errors to exit codes.
func run(ctx context.Context, flags *generateFlags, env *Environment) int {
	cfg, err := resolveConfig(flags, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	opts, err := serviceOptions(cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	poolSize := idgen.ResolvePoolSize(cfg.Workers)
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := idgen.NewServicePool(poolSize, opts...)
	defer pool.Close()

	if err := runGenerate(ctx, cfg, flags, &servicePool{pool: pool}, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
