package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/signaltower/pkg/cache"
	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/coverage"
	"github.com/matzehuels/signaltower/pkg/errors"
	planio "github.com/matzehuels/signaltower/pkg/io"
	"github.com/matzehuels/signaltower/pkg/observability"
	"github.com/matzehuels/signaltower/pkg/relay"
	"github.com/matzehuels/signaltower/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner keeps no per-run state; multiple goroutines can share one
// Runner with different options. Store is optional.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Store  *store.Store
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → optimize → path → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Seed:      opts.Seed,
		Artifacts: make(map[string][]byte),
	}

	plan, planHit, err := r.planWithCacheInfo(ctx, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Plan = plan
	result.CacheInfo.PlanHit = planHit

	r.Logger.Info("planned city",
		"run", result.RunID,
		"seed", opts.Seed,
		"towers", len(plan.Towers),
		"hops", hops(plan.Path),
		"cached", planHit)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	if len(opts.Formats) > 0 {
		r.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	r.record(ctx, result, opts)
	return result, nil
}

// Plan runs the first three stages, using the cache unless opts.Refresh.
func (r *Runner) Plan(ctx context.Context, opts Options) (*planio.Plan, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	plan, _, err := r.planWithCacheInfo(ctx, opts, &Stats{})
	return plan, err
}

func (r *Runner) planWithCacheInfo(ctx context.Context, opts Options, stats *Stats) (*planio.Plan, bool, error) {
	key := r.Keyer.PlanKey(opts.PlanKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if plan, err := planio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return plan, true, nil
			}
			// Unreadable entries fall through to recompute.
		} else if err != nil {
			r.Logger.Warn("plan cache lookup failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	plan, err := BuildPlan(ctx, opts, stats)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := planio.WriteJSON(plan, &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.PlanTTL); err != nil {
			r.Logger.Warn("plan cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", buf.Len())
		}
	}
	return plan, false, nil
}

// BuildPlan generates the grid, places towers and searches the relay path
// without touching any cache. Stage durations are written to stats.
func BuildPlan(ctx context.Context, opts Options, stats *Stats) (*planio.Plan, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	// Stage 1: Generate
	start := time.Now()
	hooks.OnGenerateStart(ctx, opts.Rows, opts.Cols, opts.BlockCoverage)
	grid, err := city.Generate(opts.Rows, opts.Cols, opts.BlockCoverage, opts.Rand())
	stats.GenerateTime = time.Since(start)
	blocked := 0
	if grid != nil {
		blocked = grid.Count(city.Blocked)
	}
	hooks.OnGenerateComplete(ctx, blocked, stats.GenerateTime, err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("generated grid",
		"rows", opts.Rows, "cols", opts.Cols, "blocked", blocked, "duration", stats.GenerateTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Optimize
	start = time.Now()
	hooks.OnOptimizeStart(ctx, blocked, opts.Radius)
	towers, err := coverage.Optimize(grid, opts.Radius, coverage.WithOnSelect(func(step int, t coverage.Tower, gain int) {
		opts.Logger.Debug("selected tower", "step", step, "tower", t, "gain", gain)
	}))
	stats.OptimizeTime = time.Since(start)
	hooks.OnOptimizeComplete(ctx, len(towers), stats.OptimizeTime, err)
	if err != nil {
		return nil, err
	}

	plan := &planio.Plan{
		Version:       planio.FormatVersion,
		Seed:          opts.Seed,
		BlockCoverage: opts.BlockCoverage,
		Radius:        opts.Radius,
		Grid:          grid,
		Towers:        towers,
		Path:          []city.Coord{},
		Coverage:      coverage.Summarize(grid),
	}
	if !opts.HasPath() {
		return plan, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Path
	start = time.Now()
	hooks.OnPathStart(ctx, len(towers))
	path, err := findPath(opts, towers)
	stats.PathTime = time.Since(start)
	hooks.OnPathComplete(ctx, hops(path), stats.PathTime, err)
	if err != nil {
		return nil, err
	}
	if len(path) == 0 {
		opts.Logger.Warn("no relay path", "start", opts.Start, "end", opts.End)
	}
	plan.Path = path
	return plan, nil
}

func findPath(opts Options, towers []city.Coord) ([]city.Coord, error) {
	from, err := opts.Start.Resolve(towers)
	if err != nil {
		return nil, err
	}
	to, err := opts.End.Resolve(towers)
	if err != nil {
		return nil, err
	}
	return relay.FindPath(opts.Radius, towers, from, to)
}

// record stores the run in the history database. Failures are logged and
// do not fail the run.
func (r *Runner) record(ctx context.Context, res *Result, opts Options) {
	if r.Store == nil {
		return
	}
	var buf bytes.Buffer
	if err := planio.WriteJSON(res.Plan, &buf); err != nil {
		r.Logger.Warn("encode plan for history", "error", err)
		return
	}
	run := &store.Run{
		ID:            res.RunID,
		Rows:          opts.Rows,
		Cols:          opts.Cols,
		BlockCoverage: opts.BlockCoverage,
		Seed:          opts.Seed,
		Radius:        opts.Radius,
		Towers:        len(res.Plan.Towers),
		Hops:          hops(res.Plan.Path),
		CoverageRatio: res.Plan.Coverage.Ratio,
		Plan:          buf.Bytes(),
	}
	if err := r.Store.Record(ctx, run); err != nil {
		r.Logger.Warn("record run", "run", res.RunID, "error", errors.UserMessage(err))
	}
}

// hops returns the number of relay hops in path, or store.NoPath.
func hops(path []city.Coord) int {
	if len(path) == 0 {
		return store.NoPath
	}
	return len(path) - 1
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Store != nil {
		if serr := r.Store.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
