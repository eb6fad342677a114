package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brianbland/pressurediagram/pkg/dataset"
	"github.com/brianbland/pressurediagram/pkg/diagram"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrOutputCollision is returned when two dataset files would render to the
// same image, e.g. run.json and run.csv
var ErrOutputCollision = errors.New("dataset files share an output path")

// Renderer renders one diagram; *diagram.Composer implements it
type Renderer interface {
	Render(spec diagram.ChartSpec) error
}

// Options contains options for batch rendering
type Options struct {
	Workers         int
	ContinueOnError bool // Keep rendering after a failed job instead of cancelling the rest
}

// DefaultOptions returns one worker per CPU and stops at the first failure
func DefaultOptions() Options {
	return Options{
		Workers:         runtime.NumCPU(),
		ContinueOnError: false,
	}
}

// Progress represents progress information during a batch
type Progress struct {
	Total     int
	Completed int
	Failed    int
	StartTime time.Time
}

// ProgressCallback is called after every finished job
type ProgressCallback func(progress Progress)

// Result is the outcome of one job
type Result struct {
	Spec     diagram.ChartSpec
	Err      error
	Duration time.Duration
}

// Runner renders chart specs concurrently
type Runner struct {
	renderer Renderer
	options  Options
	log      logrus.FieldLogger
}

// NewRunner creates a new batch runner
func NewRunner(renderer Renderer, options Options, logger logrus.FieldLogger) *Runner {
	if options.Workers <= 0 {
		options.Workers = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runner{renderer: renderer, options: options, log: logger}
}

// Run renders every spec with at most Workers renders in flight. Results
// are returned in spec order. Without ContinueOnError the first failure
// cancels jobs that have not started yet, which report the context error.
func (r *Runner) Run(ctx context.Context, specs []diagram.ChartSpec, progressCallback ProgressCallback) ([]Result, error) {
	results := make([]Result, len(specs))
	progress := Progress{Total: len(specs), StartTime: time.Now()}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.options.Workers)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Spec: spec, Err: err}
				return nil
			}

			start := time.Now()
			err := r.renderer.Render(spec)
			results[i] = Result{Spec: spec, Err: err, Duration: time.Since(start)}

			mu.Lock()
			progress.Completed++
			if err != nil {
				progress.Failed++
			}
			snapshot := progress
			mu.Unlock()

			log := r.log.WithFields(logrus.Fields{
				"path":     spec.OutputPath,
				"progress": fmt.Sprintf("%d/%d", snapshot.Completed, snapshot.Total),
			})
			if err != nil {
				log.WithError(err).Warn("Render failed")
			} else {
				log.Debug("Render finished")
			}
			if progressCallback != nil {
				progressCallback(snapshot)
			}

			if err != nil && !r.options.ContinueOnError {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) > 0 {
		return results, fmt.Errorf("%d of %d renders failed: %w", len(errs), len(specs), errors.Join(errs...))
	}
	return results, nil
}

// Discover lists the dataset files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !dataset.Supported(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// PlanSpecs loads every dataset file and builds one spec per file, writing
// <outputDir>/<dataset file name><ext>. Files whose names differ only in
// extension fail with ErrOutputCollision before anything is loaded.
func PlanSpecs(files []string, outputDir string, width, height int, ext string) ([]diagram.ChartSpec, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	outputs := make([]string, len(files))
	owner := make(map[string]string, len(files))
	for i, file := range files {
		base := filepath.Base(file)
		outputs[i] = filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
		if prev, ok := owner[outputs[i]]; ok {
			return nil, fmt.Errorf("%w: %s and %s both render to %s", ErrOutputCollision, prev, file, outputs[i])
		}
		owner[outputs[i]] = file
	}

	specs := make([]diagram.ChartSpec, 0, len(files))
	for i, file := range files {
		ds, err := dataset.LoadFromFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		specs = append(specs, diagram.ChartSpec{
			OutputPath:  outputs[i],
			Width:       width,
			Height:      height,
			Reference:   ds.Reference,
			Degradation: ds.Degradation,
		})
	}
	return specs, nil
}
