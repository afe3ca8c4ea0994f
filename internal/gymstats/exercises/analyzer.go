package exercises

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/liftstats/internal/gymstats/calendar"
	"github.com/2beens/liftstats/internal/gymstats/milestones"
	"github.com/2beens/liftstats/internal/gymstats/stats"
	"github.com/2beens/liftstats/internal/gymstats/training"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=exercises_test

type bodyWeightSource interface {
	LatestWeight(ctx context.Context) (float64, error)
}

type AnalyzerParams struct {
	Repo           exercisesRepo
	Weights        bodyWeightSource
	MetricsManager *metrics.Manager
	CacheSizeMB    int
	CacheTTL       time.Duration
}

// Analyzer turns stored sets into the stats panels. Summaries are cached per
// exercise and dropped whenever that exercise or the body weight changes.
type Analyzer struct {
	repo           exercisesRepo
	weights        bodyWeightSource
	metricsManager *metrics.Manager
	cache          *freecache.Cache
	cacheTTLSec    int

	// invalidation generations; a summary computed before an invalidation is not cached
	mu          sync.Mutex
	generation  uint64
	generations map[string]uint64
}

func NewAnalyzer(params AnalyzerParams) *Analyzer {
	megabyte := 1024 * 1024
	cacheSize := params.CacheSizeMB * megabyte
	if cacheSize <= 0 {
		cacheSize = 10 * megabyte
	}
	ttl := int(params.CacheTTL.Seconds())
	if ttl <= 0 {
		ttl = 10 * 60
	}
	metricsManager := params.MetricsManager
	if metricsManager == nil {
		metricsManager = metrics.NewManager("liftstats", "analyzer", prometheus.NewRegistry())
	}

	return &Analyzer{
		repo:           params.Repo,
		weights:        params.Weights,
		metricsManager: metricsManager,
		cache:          freecache.NewCache(cacheSize),
		cacheTTLSec:    ttl,
		generations:    make(map[string]uint64),
	}
}

type cachedSummary struct {
	Today      time.Time     `json:"today"`
	UserWeight float64       `json:"userWeight"`
	Summary    stats.Summary `json:"summary"`
}

func summaryCacheKey(exerciseID, muscleGroup string) []byte {
	return []byte(fmt.Sprintf("summary::%s::%s", muscleGroup, exerciseID))
}

// Summary returns the all-time numbers for one exercise, as seen on the day today.
func (a *Analyzer) Summary(ctx context.Context, params ExerciseParams, today time.Time) (_ *stats.Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_id", params.ExerciseID))
	span.SetAttributes(attribute.String("muscle_group", params.MuscleGroup))

	today = training.Date(today)
	userWeight, err := a.userWeight(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := summaryCacheKey(params.ExerciseID, params.MuscleGroup)
	generation := a.cacheGeneration(cacheKey)
	if cachedBytes, err := a.cache.Get(cacheKey); err == nil {
		var cached cachedSummary
		if err := json.Unmarshal(cachedBytes, &cached); err != nil {
			log.Errorf("failed to unmarshal cached summary [%s]: %s", cacheKey, err)
		} else if cached.Today.Equal(today) && cached.UserWeight == userWeight {
			a.metricsManager.CounterStatsCache.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return &cached.Summary, nil
		}
	}
	a.metricsManager.CounterStatsCache.WithLabelValues("miss").Inc()

	tracked, err := a.tracked(ctx, params, userWeight)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	summary := stats.Summarize(tracked, today)
	a.observe("summary", begin)

	cachedBytes, err := json.Marshal(cachedSummary{
		Today:      today,
		UserWeight: userWeight,
		Summary:    summary,
	})
	if err != nil {
		log.Errorf("failed to marshal summary for cache [%s]: %s", cacheKey, err)
	} else if err := a.storeIfCurrent(cacheKey, generation, cachedBytes); err != nil {
		log.Errorf("failed to write summary cache [%s]: %s", cacheKey, err)
	}

	return &summary, nil
}

type MaxWeightChart struct {
	ExerciseID  string            `json:"exerciseId"`
	MuscleGroup string            `json:"muscleGroup"`
	Days        []stats.DayWeight `json:"days"`
	Milestones  []uint32          `json:"milestones"`
}

// MaxWeightChart returns the heaviest set of each training day, with y axis ticks
// spanning the lightest and heaviest of those days.
func (a *Analyzer) MaxWeightChart(ctx context.Context, params ExerciseParams, steps uint32) (_ *MaxWeightChart, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.maxweightchart")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("steps", int(steps)))

	userWeight, err := a.userWeight(ctx)
	if err != nil {
		return nil, err
	}
	tracked, err := a.tracked(ctx, params, userWeight)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	days := stats.MaxWeightPerDay(tracked)
	ticks := []uint32{}
	if len(days) > 0 {
		lo, hi := days[0].Kilos, days[0].Kilos
		for _, d := range days[1:] {
			lo = min(lo, d.Kilos)
			hi = max(hi, d.Kilos)
		}
		ticks = milestones.ForRange(lo, hi, steps)
	}
	a.observe("max_weight_chart", begin)

	return &MaxWeightChart{
		ExerciseID:  params.ExerciseID,
		MuscleGroup: params.MuscleGroup,
		Days:        days,
		Milestones:  ticks,
	}, nil
}

type Heatmap struct {
	Scope  string              `json:"scope"`
	Offset string              `json:"offset"`
	Window calendar.Window     `json:"window"`
	Weeks  int                 `json:"weeks"`
	Days   []stats.DayActivity `json:"days"`
}

// Heatmap returns per-day activity for the calendar window picked by scope and offset.
func (a *Analyzer) Heatmap(
	ctx context.Context,
	params ExerciseParams,
	today time.Time,
	scope calendar.Scope,
	offset calendar.Offset,
) (_ *Heatmap, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.heatmap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("scope", scope.String()))
	span.SetAttributes(attribute.String("offset", offset.String()))

	window := calendar.WindowFor(today, scope, offset)
	windowEnd := window.End.AddDate(0, 0, 1)
	params.From = &window.Start
	params.To = &windowEnd

	userWeight, err := a.userWeight(ctx)
	if err != nil {
		return nil, err
	}
	tracked, err := a.tracked(ctx, params, userWeight)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	days := stats.Activity(tracked, window.Start, window.End)
	a.observe("heatmap", begin)

	return &Heatmap{
		Scope:  scope.String(),
		Offset: offset.String(),
		Window: window,
		Weeks:  window.Weeks(),
		Days:   days,
	}, nil
}

// InvalidateCache drops the cached summary of one exercise.
func (a *Analyzer) InvalidateCache(exerciseID, muscleGroup string) {
	key := summaryCacheKey(exerciseID, muscleGroup)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.generations[string(key)]++
	a.cache.Del(key)
}

// InvalidateAll drops every cached summary, e.g. after a new body weight report.
func (a *Analyzer) InvalidateAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	a.cache.Clear()
}

// cacheGeneration sums the key and global invalidation counters; both only grow.
func (a *Analyzer) cacheGeneration(key []byte) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation + a.generations[string(key)]
}

// storeIfCurrent skips the write when the key was invalidated after generation was read.
func (a *Analyzer) storeIfCurrent(key []byte, generation uint64, value []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.generation+a.generations[string(key)] != generation {
		log.Debugf("summary [%s] invalidated while computing, not caching", key)
		return nil
	}
	return a.cache.Set(key, value, a.cacheTTLSec)
}

func (a *Analyzer) tracked(ctx context.Context, params ExerciseParams, userWeight float64) (*training.TrackedExercise, error) {
	rows, err := a.repo.ListAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return Tracked(params.ExerciseID, params.MuscleGroup, rows, userWeight), nil
}

func (a *Analyzer) userWeight(ctx context.Context) (float64, error) {
	if a.weights == nil {
		return training.DefaultUserWeight, nil
	}
	w, err := a.weights.LatestWeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest body weight: %w", err)
	}
	return w, nil
}

func (a *Analyzer) observe(operation string, begin time.Time) {
	a.metricsManager.HistogramAggregation.
		WithLabelValues(operation).
		Observe(time.Since(begin).Seconds())
}
