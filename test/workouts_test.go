//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/workoutlog/internal/middleware"
	"github.com/2beens/workoutlog/internal/workoutlog"
	"github.com/2beens/workoutlog/internal/workoutlog/composer"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	t *testing.T,
	method, path, token string,
	body any,
) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (s *IntegrationTestSuite) countEntryRows(t *testing.T) int {
	t.Helper()
	var count int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM workout_entry;`).Scan(&count))
	return count
}

func (s *IntegrationTestSuite) TestWorkoutsFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	squats := composer.Draft{
		Movement:     "Squats",
		MovementType: entries.MovementExercise,
		Mode:         entries.ModeReps,
		Amount:       20,
	}

	// writes need a session
	resp := s.doRequest(ctx, t, http.MethodPost, "/workouts/entries", "", squats)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := s.doLogin(ctx, t)

	resp = s.doRequest(ctx, t, http.MethodPost, "/workouts/entries", token, squats)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decodeBody[composer.Outcome](t, resp)
	assert.False(t, first.Merged)
	assert.Equal(t, 20, first.Entry.Amount)

	// same movement, same day: merged into the first entry
	squats.Movement = "  squats "
	squats.Amount = 10
	resp = s.doRequest(ctx, t, http.MethodPost, "/workouts/entries", token, squats)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	merged := decodeBody[composer.Outcome](t, resp)
	assert.True(t, merged.Merged)
	assert.Equal(t, first.Entry.ID, merged.Entry.ID)
	assert.Equal(t, 30, merged.Entry.Amount)
	assert.Equal(t, 1, s.countEntryRows(t))

	resp = s.doRequest(ctx, t, http.MethodPost, fmt.Sprintf("/workouts/entries/%s/set", first.Entry.ID), token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	quick := decodeBody[composer.Outcome](t, resp)
	// another set of the merged entry doubles it
	assert.Equal(t, 60, quick.Entry.Amount)

	resp = s.doRequest(ctx, t, http.MethodGet, "/workouts/dashboard?metric=reps", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dashboard := decodeBody[workoutlog.Dashboard](t, resp)
	assert.Equal(t, 60, dashboard.TodayStats.Reps)
	assert.Equal(t, 1, dashboard.Streaks.CurrentStreak)

	resp = s.doRequest(ctx, t, http.MethodDelete, "/workouts/entries/"+first.Entry.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	deleted := decodeBody[workoutlog.DeleteEntryResponse](t, resp)
	assert.Equal(t, first.Entry.ID, deleted.DeletedID)
	assert.Equal(t, composer.UndoWindow.Milliseconds(), deleted.UndoWindowMs)
	assert.Equal(t, 0, s.countEntryRows(t))

	resp = s.doRequest(ctx, t, http.MethodPost, "/workouts/entries/undo", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	restored := decodeBody[composer.Outcome](t, resp)
	assert.Equal(t, first.Entry.ID, restored.Entry.ID)
	assert.Equal(t, 1, s.countEntryRows(t))

	resp = s.doRequest(ctx, t, http.MethodPost, "/workouts/entries/undo", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.doRequest(ctx, t, http.MethodGet, "/workouts/entries", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[workoutlog.EntriesResponse](t, resp)
	require.Len(t, list.Days, 1)
	require.Len(t, list.Days[0].Entries, 1)
	assert.Equal(t, 60, list.Days[0].Entries[0].Amount)
}
