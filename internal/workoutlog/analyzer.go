package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
	"github.com/2beens/workoutlog/internal/workoutlog/movements"
	"github.com/2beens/workoutlog/internal/workoutlog/trends"
)

const (
	DefaultWindowDays  = 7
	DefaultSeriesDays  = 30
	DefaultCompareDays = 7
	ChartDays          = 7
	RecentDays         = 7

	maxSeriesDays      = 366
	dashboardCacheTTL  = 60 * 60 // seconds
	minCacheSizeMB     = 1
	defaultCacheSizeMB = 10
)

var ErrInvalidParams = errors.New("invalid params")

// DashboardParams selects what the dashboard reports on. Zero values fall back to the defaults.
type DashboardParams struct {
	Today       datekey.DateKey
	Metric      entries.Mode
	WindowDays  int
	SeriesDays  int
	CompareDays int
}

func (p *DashboardParams) normalize() error {
	if _, err := datekey.Parse(p.Today.String()); err != nil {
		return fmt.Errorf("%w: today: %w", ErrInvalidParams, err)
	}
	if p.Metric == "" {
		p.Metric = entries.ModeTime
	}
	if !p.Metric.IsValid() {
		return fmt.Errorf("%w: unknown metric [%s]", ErrInvalidParams, p.Metric)
	}
	if p.WindowDays == 0 {
		p.WindowDays = DefaultWindowDays
	}
	if p.SeriesDays == 0 {
		p.SeriesDays = DefaultSeriesDays
	}
	if p.CompareDays == 0 {
		p.CompareDays = DefaultCompareDays
	}
	switch {
	case p.WindowDays < 0 || p.WindowDays > maxSeriesDays:
		return fmt.Errorf("%w: window %d", ErrInvalidParams, p.WindowDays)
	case p.SeriesDays < 0 || p.SeriesDays > maxSeriesDays:
		return fmt.Errorf("%w: days %d", ErrInvalidParams, p.SeriesDays)
	case p.CompareDays < 0:
		return fmt.Errorf("%w: compare %d", ErrInvalidParams, p.CompareDays)
	}
	return nil
}

func (p DashboardParams) cacheKey(revision uint64) []byte {
	return fmt.Appendf(nil, "dashboard::%d::%s::%s::%d::%d::%d",
		revision, p.Today, p.Metric, p.WindowDays, p.SeriesDays, p.CompareDays)
}

type Dashboard struct {
	Today           datekey.DateKey                            `json:"today"`
	Metric          entries.Mode                               `json:"metric"`
	TodayStats      trends.TodayStats                          `json:"todayStats"`
	Streaks         trends.StreakStats                         `json:"streaks"`
	Last7Days       trends.DayTotals                           `json:"last7Days"`
	Last30Days      trends.DayTotals                           `json:"last30Days"`
	Heatmap         []trends.HeatCell                          `json:"heatmap"`
	Chart           []trends.ChartDay                          `json:"chart"`
	Series          []trends.TrendPoint                        `json:"series"`
	Comparison      *trends.Comparison                         `json:"comparison,omitempty"`
	StaleMovements  map[entries.MovementType][]string          `json:"staleMovements"`
	History         map[entries.MovementType]movements.History `json:"history"`
	RecentMovements []movements.MovementTotals                 `json:"recentMovements"`
}

// TrendsParams describes a raw rolling series request.
type TrendsParams struct {
	Start      datekey.DateKey
	End        datekey.DateKey
	Metric     entries.Mode
	WindowDays int
}

// Analyzer derives read models from snapshots. Dashboards are cached per
// snapshot revision, so a cached result never outlives the data it was built from.
type Analyzer struct {
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewAnalyzer(cacheSizeMB int, metricsManager *metrics.Manager) *Analyzer {
	if cacheSizeMB <= 0 {
		cacheSizeMB = defaultCacheSizeMB
	}
	megabyte := 1024 * 1024
	return &Analyzer{
		cache:          freecache.NewCache(max(cacheSizeMB, minCacheSizeMB) * megabyte),
		metricsManager: metricsManager,
	}
}

func (a *Analyzer) Dashboard(
	ctx context.Context,
	snapshot Snapshot,
	loc *time.Location,
	params DashboardParams,
) (_ *Dashboard, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.workoutlog.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := params.normalize(); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("today", params.Today.String()),
		attribute.String("metric", params.Metric.String()),
		attribute.Int64("revision", int64(snapshot.Revision)),
	)

	cacheKey := params.cacheKey(snapshot.Revision)
	if cached, err := a.cache.Get(cacheKey); err == nil {
		dashboard := &Dashboard{}
		if err := json.Unmarshal(cached, dashboard); err == nil {
			a.metricsManager.CounterDashboardCacheHits.Inc()
			span.SetAttributes(attribute.Bool("cached", true))
			return dashboard, nil
		} else {
			log.Errorf("failed to unmarshal cached dashboard [%s]: %s", cacheKey, err)
		}
	}

	dashboard := buildDashboard(snapshot.Entries, loc, params)

	if dashboardBytes, err := json.Marshal(dashboard); err != nil {
		log.Errorf("failed to marshal dashboard for cache: %s", err)
	} else if err := a.cache.Set(cacheKey, dashboardBytes, dashboardCacheTTL); err != nil {
		log.Errorf("failed to cache dashboard [%s]: %s", cacheKey, err)
	}

	return dashboard, nil
}

func buildDashboard(list []entries.Entry, loc *time.Location, params DashboardParams) *Dashboard {
	today := params.Today
	totals := trends.BuildDailyTotals(list, loc)
	counts := trends.DailyCounts(list, loc)
	firstTracked, _ := trends.FirstTrackedDateKey(list, loc)

	dashboard := &Dashboard{
		Today:           today,
		Metric:          params.Metric,
		TodayStats:      trends.TodaySummary(list, today, loc),
		Streaks:         trends.CalculateStreaks(counts, today),
		Last7Days:       trends.WindowTotals(totals, today, 7),
		Last30Days:      trends.WindowTotals(totals, today, 30),
		Heatmap:         trends.Heatmap(counts, today, trends.HeatmapDays),
		Chart:           trends.ChartTotals(totals, today, ChartDays),
		Series:          []trends.TrendPoint{},
		History:         movements.BuildHistory(list, loc),
		RecentMovements: movements.RecentTotals(list, today, RecentDays, loc),
	}

	if params.SeriesDays > 0 {
		dashboard.Series = trends.RollingAverageSeries(trends.SeriesParams{
			StartDateKey: today.Shift(-(params.SeriesDays - 1)),
			EndDateKey:   today,
			Totals:       totals,
			Metric:       params.Metric,
			WindowDays:   params.WindowDays,
			FirstTracked: firstTracked,
		})
	}
	if cmp, ok := trends.CompareSeries(dashboard.Series, params.CompareDays); ok {
		dashboard.Comparison = &cmp
	}

	dashboard.StaleMovements = make(map[entries.MovementType][]string, len(dashboard.History))
	for movementType, history := range dashboard.History {
		dashboard.StaleMovements[movementType] = movements.SelectStale(movements.StaleParams{
			History: history,
			Today:   today,
		})
	}

	return dashboard
}

// Trends returns the raw rolling series for the requested range.
func (a *Analyzer) Trends(
	ctx context.Context,
	snapshot Snapshot,
	loc *time.Location,
	params TrendsParams,
) (_ []trends.TrendPoint, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.workoutlog.trends")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.Metric == "" {
		params.Metric = entries.ModeTime
	}
	if !params.Metric.IsValid() {
		return nil, fmt.Errorf("%w: unknown metric [%s]", ErrInvalidParams, params.Metric)
	}
	if params.WindowDays == 0 {
		params.WindowDays = DefaultWindowDays
	}
	if params.WindowDays < 0 || params.WindowDays > maxSeriesDays {
		return nil, fmt.Errorf("%w: window %d", ErrInvalidParams, params.WindowDays)
	}
	for _, k := range []datekey.DateKey{params.Start, params.End} {
		if _, err := datekey.Parse(k.String()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
	}
	if datekey.DaysBetween(params.Start, params.End) >= maxSeriesDays {
		return nil, fmt.Errorf("%w: range longer than %d days", ErrInvalidParams, maxSeriesDays)
	}

	firstTracked, _ := trends.FirstTrackedDateKey(snapshot.Entries, loc)
	series := trends.RollingAverageSeries(trends.SeriesParams{
		StartDateKey: params.Start,
		EndDateKey:   params.End,
		Totals:       trends.BuildDailyTotals(snapshot.Entries, loc),
		Metric:       params.Metric,
		WindowDays:   params.WindowDays,
		FirstTracked: firstTracked,
	})
	span.SetAttributes(attribute.Int("points", len(series)))
	return series, nil
}
