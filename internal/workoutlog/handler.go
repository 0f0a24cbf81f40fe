package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workoutlog/composer"
	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
	"github.com/2beens/workoutlog/internal/workoutlog/trends"
	"github.com/2beens/workoutlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workoutlog_test

type logService interface {
	Snapshot() Snapshot
	Location() *time.Location
	Now() time.Time
	Log(ctx context.Context, draft composer.Draft) (composer.Outcome, error)
	DuplicateLast(ctx context.Context) (composer.Outcome, error)
	QuickAddSet(ctx context.Context, id string) (composer.Outcome, error)
	Update(ctx context.Context, id string, draft composer.Draft) (composer.Outcome, error)
	Delete(ctx context.Context, id string) (composer.Outcome, error)
	Undo(ctx context.Context) (composer.Outcome, error)
}

type EntriesResponse struct {
	Revision    uint64            `json:"revision"`
	Days        []DayGroup        `json:"days"`
	LastDeleted *composer.Deleted `json:"lastDeleted,omitempty"`
	HighlightID string            `json:"highlightId,omitempty"`
}

type DeleteEntryResponse struct {
	DeletedID    string `json:"deletedId"`
	UndoWindowMs int64  `json:"undoWindowMs"`
}

type TrendsResponse struct {
	Metric     entries.Mode        `json:"metric"`
	WindowDays int                 `json:"windowDays"`
	Series     []trends.TrendPoint `json:"series"`
}

type Handler struct {
	service  logService
	analyzer *Analyzer
}

func NewHandler(service logService, analyzer *Analyzer) *Handler {
	return &Handler{
		service:  service,
		analyzer: analyzer,
	}
}

// SetupRoutes registers the workout routes. limitWrite, when set, wraps the write handlers.
func (handler *Handler) SetupRoutes(r *mux.Router, limitWrite func(routeName string) mux.MiddlewareFunc) {
	write := func(routeName string, h http.HandlerFunc) http.Handler {
		if limitWrite == nil {
			return h
		}
		return limitWrite(routeName)(h)
	}

	r.HandleFunc("/workouts/entries", handler.HandleList).Methods("GET", "OPTIONS").Name("list-entries")
	r.Handle("/workouts/entries", write("log-entry", handler.HandleLog)).Methods("POST", "OPTIONS").Name("log-entry")
	// fixed paths before /workouts/entries/{id}
	r.Handle("/workouts/entries/undo", write("undo-delete", handler.HandleUndo)).Methods("POST", "OPTIONS").Name("undo-delete")
	r.Handle("/workouts/entries/duplicate-last", write("duplicate-last", handler.HandleDuplicateLast)).Methods("POST", "OPTIONS").Name("duplicate-last")
	r.Handle("/workouts/entries/{id}", write("update-entry", handler.HandleUpdate)).Methods("PUT", "OPTIONS").Name("update-entry")
	r.Handle("/workouts/entries/{id}", write("delete-entry", handler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-entry")
	r.Handle("/workouts/entries/{id}/set", write("quick-add-set", handler.HandleQuickAddSet)).Methods("POST", "OPTIONS").Name("quick-add-set")
	r.HandleFunc("/workouts/dashboard", handler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/workouts/trends", handler.HandleTrends).Methods("GET", "OPTIONS").Name("trends")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.list")
	defer span.End()

	snapshot := handler.service.Snapshot()
	writeJSON(w, EntriesResponse{
		Revision:    snapshot.Revision,
		Days:        GroupByDay(snapshot.Entries, handler.service.Location()),
		LastDeleted: snapshot.LastDeleted,
		HighlightID: snapshot.HighlightID,
	}, http.StatusOK)
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.log")
	defer span.End()

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	outcome, err := handler.service.Log(ctx, draft)
	if err != nil {
		writeServiceError(w, "log entry", err)
		return
	}

	log.Debugf("entry logged: [%s] %s %d %s, merged: %t",
		outcome.Entry.ID, outcome.Entry.Movement, outcome.Entry.Amount, outcome.Entry.Mode, outcome.Merged)
	writeJSON(w, outcome, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	outcome, err := handler.service.Update(ctx, id, draft)
	if err != nil {
		writeServiceError(w, "update entry "+id, err)
		return
	}
	writeJSON(w, outcome, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	outcome, err := handler.service.Delete(ctx, id)
	if err != nil {
		writeServiceError(w, "delete entry "+id, err)
		return
	}
	writeJSON(w, DeleteEntryResponse{
		DeletedID:    outcome.Entry.ID,
		UndoWindowMs: composer.UndoWindow.Milliseconds(),
	}, http.StatusOK)
}

func (handler *Handler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.undo")
	defer span.End()

	outcome, err := handler.service.Undo(ctx)
	if err != nil {
		writeServiceError(w, "undo delete", err)
		return
	}
	writeJSON(w, outcome, http.StatusOK)
}

func (handler *Handler) HandleDuplicateLast(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.duplicate-last")
	defer span.End()

	outcome, err := handler.service.DuplicateLast(ctx)
	if err != nil {
		writeServiceError(w, "duplicate last", err)
		return
	}
	writeJSON(w, outcome, http.StatusCreated)
}

func (handler *Handler) HandleQuickAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.quick-add-set")
	defer span.End()

	id := mux.Vars(r)["id"]
	outcome, err := handler.service.QuickAddSet(ctx, id)
	if err != nil {
		writeServiceError(w, "quick add set "+id, err)
		return
	}
	writeJSON(w, outcome, http.StatusCreated)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.dashboard")
	defer span.End()

	query := r.URL.Query()
	today, err := handler.todayParam(query.Get("today"))
	if err != nil {
		http.Error(w, "error, invalid today", http.StatusBadRequest)
		return
	}

	params := DashboardParams{
		Today:  today,
		Metric: entries.Mode(query.Get("metric")),
	}
	for name, target := range map[string]*int{
		"window":  &params.WindowDays,
		"days":    &params.SeriesDays,
		"compare": &params.CompareDays,
	} {
		if *target, err = intParam(query.Get(name)); err != nil {
			http.Error(w, "error, invalid "+name, http.StatusBadRequest)
			return
		}
	}

	dashboard, err := handler.analyzer.Dashboard(ctx, handler.service.Snapshot(), handler.service.Location(), params)
	if err != nil {
		writeServiceError(w, "dashboard", err)
		return
	}
	writeJSON(w, dashboard, http.StatusOK)
}

func (handler *Handler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.trends")
	defer span.End()

	query := r.URL.Query()
	end, err := handler.todayParam(query.Get("end"))
	if err != nil {
		http.Error(w, "error, invalid end", http.StatusBadRequest)
		return
	}
	start := end.Shift(-(DefaultSeriesDays - 1))
	if s := query.Get("start"); s != "" {
		if start, err = datekey.Parse(s); err != nil {
			http.Error(w, "error, invalid start", http.StatusBadRequest)
			return
		}
	}
	windowDays, err := intParam(query.Get("window"))
	if err != nil {
		http.Error(w, "error, invalid window", http.StatusBadRequest)
		return
	}

	params := TrendsParams{
		Start:      start,
		End:        end,
		Metric:     entries.Mode(query.Get("metric")),
		WindowDays: windowDays,
	}
	series, err := handler.analyzer.Trends(ctx, handler.service.Snapshot(), handler.service.Location(), params)
	if err != nil {
		writeServiceError(w, "trends", err)
		return
	}

	resp := TrendsResponse{
		Metric:     params.Metric,
		WindowDays: params.WindowDays,
		Series:     series,
	}
	if resp.Metric == "" {
		resp.Metric = entries.ModeTime
	}
	if resp.WindowDays == 0 {
		resp.WindowDays = DefaultWindowDays
	}
	writeJSON(w, resp, http.StatusOK)
}

// todayParam parses a date key, defaulting to the current day of the service clock.
func (handler *Handler) todayParam(value string) (datekey.DateKey, error) {
	if value == "" {
		return datekey.FromTime(handler.service.Now()), nil
	}
	return datekey.Parse(value)
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (composer.Draft, bool) {
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return composer.Draft{}, false
	}

	var draft composer.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Tracef("unmarshal draft: %s", err)
		http.Error(w, "error, invalid entry", http.StatusBadRequest)
		return composer.Draft{}, false
	}
	return draft, true
}

func writeServiceError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, composer.ErrInvalidDraft), errors.Is(err, ErrInvalidParams):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, composer.ErrEntryNotFound), errors.Is(err, composer.ErrNoEntries):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, composer.ErrNothingToUndo):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("failed to %s: %s", action, err)
		http.Error(w, "error, failed to "+action, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, statusCode)
}
