package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/workoutlog/internal/auth"
	"github.com/2beens/workoutlog/internal/config"
	"github.com/2beens/workoutlog/internal/middleware"
	"github.com/2beens/workoutlog/internal/scheduler"
	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/workoutlog"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

type memStore struct {
	mu   sync.Mutex
	list []entries.Entry
}

func (m *memStore) ListAll(_ context.Context) ([]entries.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entries.Entry(nil), m.list...), nil
}

func (m *memStore) Replace(_ context.Context, list []entries.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append([]entries.Entry(nil), list...)
	return nil
}

func newTestServer(t *testing.T) (*Server, redismock.ClientMock) {
	t.Helper()

	rdb, redisMock := redismock.NewClientMock()
	metricsManager := metrics.NewTestManager()
	taskScheduler := scheduler.New()

	store := &memStore{list: []entries.Entry{{
		ID:           "e1",
		Timestamp:    time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC).UnixMilli(),
		Movement:     "Squats",
		MovementType: entries.MovementExercise,
		Mode:         entries.ModeReps,
		Amount:       20,
	}}}
	logService := workoutlog.NewService(workoutlog.ServiceParams{
		Store:          store,
		Scheduler:      taskScheduler,
		MetricsManager: metricsManager,
		Now: func() time.Time {
			return time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
		},
	})
	require.NoError(t, logService.Load(context.Background()))

	_, cleanerCancel := context.WithCancel(context.Background())
	s := &Server{
		config: &config.Config{
			WriteRateLimitAllowedPerMin: 120,
			LoginRateLimitAllowedPerMin: 15,
		},
		redisClient: rdb,
		versionInfo: "abc123",

		logService: logService,
		analyzer:   workoutlog.NewAnalyzer(1, metricsManager),
		scheduler:  taskScheduler,

		authService:   auth.NewAuthService(&auth.Admin{Username: "admin"}, auth.DefaultTTL, rdb),
		loginChecker:  auth.NewLoginChecker(auth.DefaultTTL, rdb),
		cleanerCancel: cleanerCancel,

		metricsManager: metricsManager,
		otelShutdown:   func() {},
	}
	t.Cleanup(taskScheduler.Stop)

	return s, redisMock
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	router, err := s.routerSetup()
	require.NoError(t, err)

	req.Header.Set("User-Agent", "test-agent")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestServer_routerSetup_rootAndVersion(t *testing.T) {
	s, _ := newTestServer(t)

	rr := serve(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "I'm OK, thanks ;)", rr.Body.String())

	rr = serve(t, s, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc123", rr.Body.String())
}

func TestServer_routerSetup_unknownPath(t *testing.T) {
	s, _ := newTestServer(t)

	rr := serve(t, s, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_routerSetup_readsArePublic(t *testing.T) {
	s, _ := newTestServer(t)

	rr := serve(t, s, httptest.NewRequest(http.MethodGet, "/workouts/entries", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"e1"`)

	rr = serve(t, s, httptest.NewRequest(http.MethodGet, "/workouts/dashboard?today=2026-03-03", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"today":"2026-03-03"`)

	assert.Equal(t, float64(2), testutil.ToFloat64(s.metricsManager.CounterRequests.WithLabelValues("GET", "200")))
}

func TestServer_routerSetup_writesNeedSession(t *testing.T) {
	s, redisMock := newTestServer(t)

	body := `{"movement":"Squats","movementType":"exercises","mode":"reps","amount":10}`

	req := httptest.NewRequest(http.MethodPost, "/workouts/entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(t, s, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	redisMock.ExpectGet("workoutlog-session||expired-token").RedisNil()
	req = httptest.NewRequest(http.MethodPost, "/workouts/entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TokenHeader, "expired-token")
	rr = serve(t, s, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	assert.NoError(t, redisMock.ExpectationsWereMet())
	assert.Len(t, s.logService.Snapshot().Entries, 1)
}

func TestServer_routerSetup_corsRejectsUnknownOrigin(t *testing.T) {
	s, _ := newTestServer(t)

	router, err := s.routerSetup()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/workouts/entries", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestServer_GracefulShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	s.metricsManager.GaugeLifeSignal.Set(1)

	otelShutdownCalled := false
	s.otelShutdown = func() { otelShutdownCalled = true }

	s.GracefulShutdown()

	assert.True(t, otelShutdownCalled)
	assert.Equal(t, float64(0), testutil.ToFloat64(s.metricsManager.GaugeLifeSignal))
}
