// csa2parquet parses every .csa file under a directory and writes one
// summary row per game to a parquet file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"csa/pkg/csa"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to config.json (default: search upwards)")
	input := flag.String("input", "", "input directory for CSA files")
	output := flag.String("output", "", "output parquet file")
	workers := flag.Int("workers", 0, "number of parse workers (0=NumCPU)")
	strict := flag.Bool("strict", false, "reject files with trailing unparsed input")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "workers":
			cfg.Workers = *workers
		case "strict":
			cfg.Strict = *strict
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	files, err := csa.CollectCSA(cfg.Input)
	if err != nil {
		fatal(err)
	}
	if len(files) == 0 {
		fatal(fmt.Errorf("no .csa files found in %s", cfg.Input))
	}
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(err)
		}
	}
	fmt.Fprintf(os.Stderr, "files: %d, workers: %d, output: %s\n", len(files), cfg.Workers, cfg.Output)

	start := time.Now()
	written, failed, err := convert(context.Background(), cfg, files)
	if err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "written: %d, failed: %d, elapsed: %s\n", written, failed, time.Since(start).Round(time.Millisecond))
}

func loadConfig(path string) (csa.Config, error) {
	if path == "" {
		found, _, err := csa.FindConfigPath()
		if err != nil {
			return csa.LoadConfig("")
		}
		path = found
	}
	return csa.LoadConfig(path)
}

// convert runs a loader -> parse workers -> parquet writer pipeline.
// Files that fail to parse are reported and skipped.
func convert(ctx context.Context, cfg csa.Config, files []string) (int64, int64, error) {
	g, ctx := errgroup.WithContext(ctx)

	paths := make(chan string, 128)
	summaries := make(chan csa.GameSummary, 128)
	var written, failed int64

	g.Go(func() error {
		defer close(paths)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case paths <- path:
			}
		}
		return nil
	})

	g.Go(func() error {
		return csa.WriteParquet(cfg.Output, summaries, cfg.Parallel)
	})

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for path := range paths {
				rec, err := csa.ReadFile(path, cfg.Strict)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to process %s: %v\n", path, err)
					atomic.AddInt64(&failed, 1)
					continue
				}
				id, err := filepath.Rel(cfg.Input, path)
				if err != nil {
					id = filepath.Base(path)
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case summaries <- csa.Summarize(id, rec):
					atomic.AddInt64(&written, 1)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(summaries)
		return nil
	})

	if err := g.Wait(); err != nil {
		return written, failed, err
	}
	return written, failed, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
