package batch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianbland/pressurediagram/pkg/dataset"
	"github.com/brianbland/pressurediagram/pkg/diagram"
	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeRenderer records calls and fails for configured paths
type fakeRenderer struct {
	mu       sync.Mutex
	rendered []string
	fail     map[string]error
	inFlight int32
	maxSeen  int32
	delay    time.Duration
}

func (f *fakeRenderer) Render(spec diagram.ChartSpec) error {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	f.rendered = append(f.rendered, spec.OutputPath)
	f.mu.Unlock()
	return f.fail[spec.OutputPath]
}

func specs(paths ...string) []diagram.ChartSpec {
	out := make([]diagram.ChartSpec, len(paths))
	for i, p := range paths {
		out[i] = diagram.ChartSpec{OutputPath: p, Width: 10, Height: 10}
	}
	return out
}

func TestRunAll(t *testing.T) {
	renderer := &fakeRenderer{delay: 5 * time.Millisecond}
	runner := NewRunner(renderer, Options{Workers: 2}, quietLogger())

	var calls int32
	results, err := runner.Run(context.Background(), specs("a", "b", "c", "d", "e"), func(p Progress) {
		atomic.AddInt32(&calls, 1)
		if p.Total != 5 {
			t.Errorf("progress total = %d, want 5", p.Total)
		}
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		if results[i].Spec.OutputPath != name || results[i].Err != nil {
			t.Errorf("result %d = %+v", i, results[i])
		}
	}
	if calls != 5 {
		t.Errorf("progress callback called %d times, want 5", calls)
	}
	if renderer.maxSeen > 2 {
		t.Errorf("%d renders in flight, limit is 2", renderer.maxSeen)
	}
}

func TestRunStopsOnError(t *testing.T) {
	boom := errors.New("disk full")
	renderer := &fakeRenderer{fail: map[string]error{"a": boom}}
	runner := NewRunner(renderer, Options{Workers: 1}, quietLogger())

	results, err := runner.Run(context.Background(), specs("a", "b", "c"), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
	if !errors.Is(results[0].Err, boom) {
		t.Errorf("first result error = %v", results[0].Err)
	}
	for _, res := range results[1:] {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("job %s error = %v, want context.Canceled", res.Spec.OutputPath, res.Err)
		}
	}
	if len(renderer.rendered) != 1 {
		t.Errorf("rendered %v after failure, want only a", renderer.rendered)
	}
}

func TestRunContinueOnError(t *testing.T) {
	boom := errors.New("bad path")
	renderer := &fakeRenderer{fail: map[string]error{"b": boom}}
	runner := NewRunner(renderer, Options{Workers: 3, ContinueOnError: true}, quietLogger())

	var last Progress
	var mu sync.Mutex
	results, err := runner.Run(context.Background(), specs("a", "b", "c"), func(p Progress) {
		mu.Lock()
		if p.Completed > last.Completed {
			last = p
		}
		mu.Unlock()
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped %v", err, boom)
	}
	if len(renderer.rendered) != 3 {
		t.Errorf("rendered %d jobs, want 3", len(renderer.rendered))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unexpected errors: %v, %v", results[0].Err, results[2].Err)
	}
	if last.Completed != 3 || last.Failed != 1 {
		t.Errorf("final progress = %+v, want 3 completed, 1 failed", last)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := &fakeRenderer{}
	runner := NewRunner(renderer, Options{Workers: 2}, quietLogger())
	_, err := runner.Run(ctx, specs("a", "b"), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if len(renderer.rendered) != 0 {
		t.Errorf("rendered %v with a cancelled context", renderer.rendered)
	}
}

func TestDiscoverAndPlan(t *testing.T) {
	in := t.TempDir()
	ds := &dataset.DataSet{
		Reference:   diagram.Series{{X: 0, Y: 0}, {X: 100, Y: 100}},
		Degradation: diagram.Series{{X: 0, Y: 0}, {X: 100, Y: 50}},
	}
	for _, name := range []string{"b.json", "a.json"} {
		if err := dataset.SaveToFile(ds, filepath.Join(in, name)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(in, "readme.txt"), []byte("notes"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(in, "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(in)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.json" {
		t.Fatalf("Discover = %v, want a.json and b.json", files)
	}

	out := t.TempDir()
	planned, err := PlanSpecs(files, out, 640, 480, "jpg")
	if err != nil {
		t.Fatalf("PlanSpecs failed: %v", err)
	}
	if want := filepath.Join(out, "a.jpg"); planned[0].OutputPath != want {
		t.Errorf("OutputPath = %s, want %s", planned[0].OutputPath, want)
	}
	if planned[1].Width != 640 || planned[1].Height != 480 || len(planned[1].Degradation) != 2 {
		t.Errorf("unexpected spec %+v", planned[1])
	}
}

func TestPlanSpecsOutputCollision(t *testing.T) {
	in := t.TempDir()
	ds := &dataset.DataSet{Reference: diagram.Series{{X: 0, Y: 0}, {X: 100, Y: 100}}}
	if err := dataset.SaveToFile(ds, filepath.Join(in, "run.json")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(in, "run.csv"), []byte("reference,0,0\nreference,100,100\n"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(in)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Discover = %v, want run.csv and run.json", files)
	}

	planned, err := PlanSpecs(files, t.TempDir(), 640, 480, ".jpg")
	if !errors.Is(err, ErrOutputCollision) {
		t.Fatalf("PlanSpecs error = %v, want ErrOutputCollision", err)
	}
	if planned != nil {
		t.Errorf("PlanSpecs returned %d specs alongside the error", len(planned))
	}
}

func TestBatchRendersFiles(t *testing.T) {
	opts := diagram.DefaultOptions()
	opts.Logger = quietLogger()
	composer, err := diagram.NewComposer(opts)
	if err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	jobs := []diagram.ChartSpec{
		{OutputPath: filepath.Join(out, "one.jpg"), Width: 200, Height: 200},
		{OutputPath: filepath.Join(out, "two.jpg"), Width: 300, Height: 100,
			Reference: diagram.Series{{X: 0, Y: 0}, {X: 300, Y: 900}}},
	}

	if _, err := NewRunner(composer, DefaultOptions(), quietLogger()).Run(context.Background(), jobs, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, job := range jobs {
		if _, err := os.Stat(job.OutputPath); err != nil {
			t.Errorf("%s not written: %v", job.OutputPath, err)
		}
	}
}
