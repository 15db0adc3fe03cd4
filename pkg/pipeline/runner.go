package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vascnet/netinput/pkg/assemble"
	"github.com/vascnet/netinput/pkg/cache"
	"github.com/vascnet/netinput/pkg/echo"
	netio "github.com/vascnet/netinput/pkg/io"
	"github.com/vascnet/netinput/pkg/model"
	"github.com/vascnet/netinput/pkg/observability"
	"github.com/vascnet/netinput/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// RunID identifies the runner in log records.
	RunID string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger.With("run", id[:8]),
		RunID:  id,
	}
}

// Execute runs load, check, echo and plan over the file at path. Echo
// files are written only when opts.EchoDir is set.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{RunID: r.RunID}

	// Stage 1: Load
	in, err := r.Load(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	result.Input = in
	result.Stats.ParseTime = in.ParseTime

	// Stage 2: Check
	start := time.Now()
	report, err := r.Check(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Report = report
	result.Stats.ValidateTime = time.Since(start)

	// Stage 3: Echo
	if opts.EchoDir != "" {
		written, err := r.Echo(ctx, in.Model, opts.EchoDir)
		if err != nil {
			return nil, err
		}
		result.Echoes = written
	}

	// Stage 4: Plan
	start = time.Now()
	plan, _, err := r.PlanWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Plan = plan
	result.Stats.AssembleTime = time.Since(start)

	r.Logger.Info("assembled network",
		"calls", plan.Calls(),
		"warnings", len(report.Warnings),
		"duration", result.Stats.AssembleTime)

	return result, nil
}

// Load reads the file at path and parses it. See [Runner.LoadBytes].
func (r *Runner) Load(ctx context.Context, path string, opts Options) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return r.LoadBytes(ctx, path, data, opts)
}

// LoadBytes parses data, named source in diagnostics, into the canonical
// model. A model parsed before from the same bytes with the same options
// is returned from the cache unless opts.Refresh is set.
func (r *Runner) LoadBytes(ctx context.Context, source string, data []byte, opts Options) (*Input, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	format := opts.Format
	if format == "" {
		format = DetectFormat(source, data)
	}

	in := &Input{
		Source:    source,
		Format:    format,
		InputHash: cache.Hash(data),
	}
	key := r.Keyer.ModelKey(in.InputHash, cache.ModelKeyOpts{
		Format:        string(format),
		StrictNumbers: opts.StrictNumbers,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if m, canonical, ok := r.cachedModel(ctx, key); ok {
			in.Model = m
			in.ModelHash = cache.Hash(canonical)
			in.CacheHit = true
			r.Logger.Debug("loaded network from cache", "source", source)
			return in, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, string(format), source)
	start := time.Now()
	m, err := Parse(data, format, opts)
	in.ParseTime = time.Since(start)
	segments := 0
	if m != nil {
		segments = len(m.Segments)
	}
	hooks.OnParseComplete(ctx, string(format), source, segments, in.ParseTime, err)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	in.Model = m

	// Cache the canonical encoding; models it cannot represent are not cached.
	if canonical, err := netio.MarshalJSON(m); err == nil {
		in.ModelHash = cache.Hash(canonical)
		if err := r.Cache.Set(ctx, key, canonical, cache.TTLModel); err == nil {
			observability.Cache().OnCacheSet(ctx, "model", len(canonical))
		}
	} else {
		r.Logger.Debug("model not cached", "source", source, "reason", err)
	}

	r.Logger.Info("parsed network",
		"source", source,
		"format", format,
		"nodes", len(m.Nodes),
		"segments", len(m.Segments),
		"duration", in.ParseTime)

	return in, nil
}

func (r *Runner) cachedModel(ctx context.Context, key string) (*model.Model, []byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "model")
		return nil, nil, false
	}
	m, err := netio.ParseJSON(data)
	if err != nil {
		// Undecodable entry; drop it and reparse.
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "model")
		return nil, nil, false
	}
	observability.Cache().OnCacheHit(ctx, "model")
	return m, data, true
}

// Check validates the loaded model and logs every warning.
func (r *Runner) Check(ctx context.Context, in *Input, opts Options) (*validate.Report, error) {
	start := time.Now()
	report, err := validate.Validate(in.Model, opts.validateOptions())
	warnings := 0
	if report != nil {
		warnings = len(report.Warnings)
	}
	observability.Pipeline().OnValidateComplete(ctx, warnings, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", in.Source, err)
	}
	for _, w := range report.Warnings {
		r.Logger.Warnf("%s: %s", in.Source, w.Message)
	}
	return report, nil
}

// Echo writes the human-readable echo and the JSON echo of m into dir and
// returns the paths written.
func (r *Runner) Echo(_ context.Context, m *model.Model, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create echo dir: %w", err)
	}
	text := filepath.Join(dir, EchoTextFile)
	if err := echo.Export(m, text); err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}
	structured := filepath.Join(dir, EchoJSONFile)
	if err := netio.ExportJSON(m, structured); err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}
	r.Logger.Debug("wrote echo files", "text", text, "json", structured)
	return []string{text, structured}, nil
}

// Plan assembles the loaded model into a [assemble.Plan].
func (r *Runner) Plan(ctx context.Context, in *Input, opts Options) (*assemble.Plan, error) {
	plan, _, err := r.PlanWithCacheInfo(ctx, in, opts)
	return plan, err
}

// PlanWithCacheInfo assembles the loaded model and reports whether the plan
// came from the cache.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, in *Input, opts Options) (*assemble.Plan, bool, error) {
	var key string
	if in.ModelHash != "" {
		key = r.Keyer.PlanKey(in.ModelHash)
	}

	if key != "" && !opts.Refresh {
		var cached assemble.Plan
		if err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "plan")
			return &cached, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	start := time.Now()
	plan, err := assemble.BuildPlan(in.Model)
	calls := 0
	if plan != nil {
		calls = plan.Calls()
	}
	observability.Pipeline().OnAssembleComplete(ctx, calls, time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("assemble %s: %w", in.Source, err)
	}

	if key != "" {
		if size, err := cache.SetJSON(ctx, r.Cache, key, plan, cache.TTLPlan); err == nil {
			observability.Cache().OnCacheSet(ctx, "plan", size)
		}
	}
	return plan, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
