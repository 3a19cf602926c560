package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	md2note "github.com/alnah/go-md2note"
	"github.com/alnah/go-md2note/internal/fileutil"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, raw string) (*md2note.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2note.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Title      string
	HTML       string // Set only when printing to stdout
	Size       int    // Bytes of HTML produced
	Err        error
	Duration   time.Duration
}

// convertBatch converts files with a fixed number of workers. The converter
// is shared: it is safe for concurrent use. Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	res, err := conv.Convert(ctx, string(content))
	if err != nil {
		return fail(err)
	}
	result.Title = res.Title
	result.Size = len(res.HTML)

	if params.check {
		if err := checkOutput(res.HTML); err != nil {
			return fail(err)
		}
	}

	if params.stdout {
		result.HTML = res.HTML
		result.OutputPath = ""
		result.Duration = time.Since(start)
		return result
	}

	if err := ensureOutputDir(f.OutputPath); err != nil {
		return fail(err)
	}
	if err := fileutil.WriteAtomic(f.OutputPath, []byte(res.HTML), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteHTML, err))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
// In stdout mode the HTML of each file goes to stdout, one document per line,
// and progress lines are suppressed.
func printResults(results []ConversionResult, common commonFlags, params *conversionParams, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if params.stdout {
			fmt.Fprintln(env.Stdout, r.HTML)
			continue
		}

		if common.quiet {
			continue
		}

		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n",
				r.InputPath, r.OutputPath, humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond)) // #nosec G115 -- length is never negative
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && !params.stdout && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
