package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tanq16/cratedl/internal/extract"
	"github.com/tanq16/cratedl/internal/output"
	"github.com/tanq16/cratedl/internal/partition"
	"github.com/tanq16/cratedl/internal/utils"
)

// Runner drives the fixed worker pool. Each worker owns one contiguous
// chunk of URLs and processes it sequentially; workers share nothing but
// the results channel.
type Runner struct {
	Resolver  extract.Resolver
	OutputDir string
	Workers   int
	Display   *output.Manager // optional
}

// Run partitions urls across the worker pool, waits for every dispatched
// URL to report back, and returns the aggregated summary. Per-item errors
// never abort the run; an empty input returns immediately.
func (r *Runner) Run(ctx context.Context, urls []string) Summary {
	var summary Summary
	if len(urls) == 0 {
		return summary
	}
	workers := r.Workers
	if workers < 1 {
		workers = utils.DefaultWorkers
	}

	results := make(chan Result)
	chunks := partition.Split(urls, workers)
	log.Debug().Str("op", "pipeline/run").Msgf("Dispatching %d URLs across %d workers", len(urls), len(chunks))
	for _, chunk := range chunks {
		go func(chunk []string) {
			for _, url := range chunk {
				results <- r.processURL(ctx, url)
			}
		}(chunk)
	}

	// Exactly one token arrives per dispatched URL, in completion order.
	for i := 0; i < len(urls); i++ {
		summary.add(<-results)
	}
	return summary
}

func (r *Runner) processURL(ctx context.Context, url string) Result {
	target := filepath.Join(r.OutputDir, DeriveFilename(url))
	var displayID int
	if r.Display != nil {
		displayID = r.Display.Register(url)
	}

	if _, err := os.Stat(target); err == nil {
		log.Debug().Str("op", "pipeline/worker").Msgf("Already exists, skipping %s", url)
		if r.Display != nil {
			r.Display.Complete(displayID, "skipped", fmt.Sprintf("Already exists %s", target))
		}
		return Result{URL: url, Path: target, Skipped: true}
	}

	if r.Display != nil {
		r.Display.SetStatus(displayID, "downloading")
		r.Display.SetMessage(displayID, fmt.Sprintf("Resolving %s", url))
	}
	resolved, err := r.Resolver.Resolve(ctx, url)
	if err != nil {
		return r.fail(displayID, url, target, fmt.Errorf("could not resolve %s: %v", url, err))
	}

	if r.Display != nil {
		r.Display.SetMessage(displayID, fmt.Sprintf("Downloading %s", url))
	}
	stream, err := resolved.Download(ctx, 1)
	if err != nil {
		return r.fail(displayID, url, target, fmt.Errorf("could not download %s: %v", url, err))
	}
	defer stream.Close()

	if err := r.writeArtifact(stream, target); err != nil {
		return r.fail(displayID, url, target, err)
	}
	log.Info().Str("op", "pipeline/worker").Msgf("Downloaded %s", target)
	if r.Display != nil {
		r.Display.Complete(displayID, "success", fmt.Sprintf("Downloaded %s", target))
	}
	return Result{URL: url, Path: target}
}

// writeArtifact streams bytes to a uuid-marked temp file and renames it
// into place, so a crashed transfer never leaves a half-written target.
func (r *Runner) writeArtifact(stream io.Reader, target string) error {
	tempDir := filepath.Join(r.OutputDir, utils.TempDirName)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return fmt.Errorf("error creating temp directory: %v", err)
	}
	tempPath := filepath.Join(tempDir, uuid.New().String()+"-dl-"+filepath.Base(target)+".part")
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("error creating temp file: %v", err)
	}
	if _, err := io.Copy(file, stream); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("error writing %s: %v", tempPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing %s: %v", tempPath, err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("error finalizing %s: %v", target, err)
	}
	return nil
}

func (r *Runner) fail(displayID int, url, target string, err error) Result {
	log.Warn().Str("op", "pipeline/worker").Err(err).Msgf("Failed %s", url)
	if r.Display != nil {
		r.Display.ReportError(displayID, err)
	}
	return Result{URL: url, Path: target, Err: err}
}
