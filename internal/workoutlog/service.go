package workoutlog

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workoutlog/composer"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workoutlog_test

type entryStore interface {
	ListAll(ctx context.Context) ([]entries.Entry, error)
	Replace(ctx context.Context, list []entries.Entry) error
}

type taskScheduler interface {
	Schedule(purpose string, delay time.Duration, fn func())
	Cancel(purpose string)
}

// Snapshot is a consistent, read-only copy of the service state.
type Snapshot struct {
	// Revision grows with every committed change of the entry collection.
	Revision    uint64            `json:"revision"`
	Entries     []entries.Entry   `json:"entries"`
	LastDeleted *composer.Deleted `json:"lastDeleted,omitempty"`
	HighlightID string            `json:"highlightId,omitempty"`
}

type ServiceParams struct {
	Store          entryStore
	Scheduler      taskScheduler
	MetricsManager *metrics.Manager
	Location       *time.Location
	// Now and NewID default to the wall clock and random uuids.
	Now   func() time.Time
	NewID func() string
}

// Service owns the composer state. Every change runs a reducer, persists the
// resulting collection and only then commits the new state.
type Service struct {
	mutex    sync.Mutex
	state    composer.State
	revision uint64

	store          entryStore
	scheduler      taskScheduler
	metricsManager *metrics.Manager
	loc            *time.Location
	now            func() time.Time
	newID          func() string
}

func NewService(params ServiceParams) *Service {
	s := &Service{
		store:          params.Store,
		scheduler:      params.Scheduler,
		metricsManager: params.MetricsManager,
		loc:            params.Location,
		now:            params.Now,
		newID:          params.NewID,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Now is the service clock in the configured location.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Load replaces the in-memory state with the stored collection.
func (s *Service) Load(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workoutlog.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	list, err := s.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.state = composer.NewState(list)
	s.revision++
	s.metricsManager.GaugeEntries.Set(float64(len(list)))
	span.SetAttributes(attribute.Int("entries", len(list)))
	log.Debugf("workout log loaded: %d entries", len(list))

	return nil
}

func (s *Service) Snapshot() Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snap := Snapshot{
		Revision:    s.revision,
		Entries:     slices.Clone(s.state.Entries),
		HighlightID: s.state.HighlightID,
	}
	if snap.Entries == nil {
		snap.Entries = []entries.Entry{}
	}
	if s.state.LastDeleted != nil {
		d := *s.state.LastDeleted
		snap.LastDeleted = &d
	}
	return snap
}

func (s *Service) Log(ctx context.Context, draft composer.Draft) (composer.Outcome, error) {
	out, err := s.apply(ctx, "log", func(state composer.State, env composer.Env) (composer.State, composer.Outcome, []composer.Effect, error) {
		return composer.Log(state, draft, env)
	})
	if err == nil {
		s.countLogged(out)
	}
	return out, err
}

func (s *Service) DuplicateLast(ctx context.Context) (composer.Outcome, error) {
	out, err := s.apply(ctx, "duplicate-last", composer.DuplicateLast)
	if err == nil {
		s.countLogged(out)
	}
	return out, err
}

func (s *Service) QuickAddSet(ctx context.Context, id string) (composer.Outcome, error) {
	out, err := s.apply(ctx, "quick-add-set", func(state composer.State, env composer.Env) (composer.State, composer.Outcome, []composer.Effect, error) {
		return composer.QuickAddSet(state, id, env)
	})
	if err == nil {
		s.countLogged(out)
	}
	return out, err
}

func (s *Service) Update(ctx context.Context, id string, draft composer.Draft) (composer.Outcome, error) {
	out, err := s.apply(ctx, "update", func(state composer.State, env composer.Env) (composer.State, composer.Outcome, []composer.Effect, error) {
		return composer.Update(state, id, draft, env)
	})
	if err == nil && out.Merged {
		s.metricsManager.CounterEntriesMerged.Inc()
	}
	return out, err
}

func (s *Service) Delete(ctx context.Context, id string) (composer.Outcome, error) {
	out, err := s.apply(ctx, "delete", func(state composer.State, _ composer.Env) (composer.State, composer.Outcome, []composer.Effect, error) {
		return composer.Delete(state, id)
	})
	if err == nil {
		s.metricsManager.CounterEntriesDeleted.Inc()
	}
	return out, err
}

func (s *Service) Undo(ctx context.Context) (composer.Outcome, error) {
	out, err := s.apply(ctx, "undo", composer.Undo)
	if err == nil {
		s.metricsManager.CounterUndos.Inc()
	}
	return out, err
}

func (s *Service) countLogged(out composer.Outcome) {
	s.metricsManager.CounterEntriesLogged.WithLabelValues(out.Entry.Mode.String()).Inc()
	if out.Merged {
		s.metricsManager.CounterEntriesMerged.Inc()
	}
}

type reducer func(composer.State, composer.Env) (composer.State, composer.Outcome, []composer.Effect, error)

func (s *Service) apply(ctx context.Context, action string, reduce reducer) (_ composer.Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workoutlog."+action)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	env := composer.Env{
		Now:      s.now(),
		NewID:    s.newID(),
		Location: s.loc,
	}
	next, out, effects, err := reduce(s.state, env)
	if err != nil {
		return composer.Outcome{}, err
	}

	for _, eff := range effects {
		if eff.Kind != composer.EffectPersist {
			continue
		}
		if err := s.persist(ctx, eff.Snapshot); err != nil {
			return composer.Outcome{}, err
		}
	}

	s.state = next
	s.revision++
	s.metricsManager.GaugeEntries.Set(float64(len(next.Entries)))
	span.SetAttributes(
		attribute.String("entry.id", out.Entry.ID),
		attribute.Bool("entry.merged", out.Merged),
	)

	for _, eff := range effects {
		switch eff.Kind {
		case composer.EffectSchedule:
			purpose, entryID := eff.Purpose, eff.EntryID
			s.scheduler.Schedule(string(purpose), eff.Delay, func() {
				s.expire(purpose, entryID)
			})
		case composer.EffectCancel:
			s.scheduler.Cancel(string(eff.Purpose))
		}
	}

	return out, nil
}

func (s *Service) persist(ctx context.Context, list []entries.Entry) error {
	defer func(begin time.Time) {
		s.metricsManager.HistPersistDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	if err := s.store.Replace(ctx, list); err != nil {
		s.metricsManager.CounterPersistFailures.Inc()
		log.Errorf("persist %d workout entries: %s", len(list), err)
		return fmt.Errorf("persist entries: %w", err)
	}
	return nil
}

func (s *Service) expire(purpose composer.Purpose, entryID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.state = composer.Expire(s.state, purpose, entryID)
	log.Tracef("workout log: %s for entry [%s] expired", purpose, entryID)
}
