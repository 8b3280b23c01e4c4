package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kalender/internal/delivery/http/controllers"
	"kalender/internal/delivery/http/helpers"
	"kalender/internal/delivery/http/middleware"
	"kalender/internal/domain"
	"kalender/internal/repository/memory"
	"kalender/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	events := memory.NewEventRepository()
	parts := memory.NewParticipationRepository()
	mux := NewRouter(
		controllers.NewEventController(testLogger, services.NewEventService(events, parts, testLogger, time.Second)),
		controllers.NewParticipationController(testLogger, services.NewParticipationService(events, parts, false, testLogger, time.Second)),
		controllers.NewStatisticsController(testLogger, services.NewStatisticsService(events, parts, time.Second)),
		middleware.NewRateLimiter(600, 100),
	)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, data any) (int, helpers.APIResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	if data != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return resp.StatusCode, envelope
}

func TestRouter_EventLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var public, hidden domain.Event
	status, _ := do(t, srv, http.MethodPost, "/api/events",
		`{"title":"Jalsa","date":"2025-06-01","category":"Ijtema","createdBy":"admin"}`, &public)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, public.ID)
	assert.Equal(t, domain.DefaultLocation, public.Location)

	status, _ = do(t, srv, http.MethodPost, "/api/events",
		`{"title":"Shura","date":"2025-05-01","category":"Meeting","createdBy":"admin","isAdminOnly":true}`, &hidden)
	require.Equal(t, http.StatusCreated, status)

	var listed []domain.Event
	status, _ = do(t, srv, http.MethodGet, "/api/events", "", &listed)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, listed, 1)
	assert.Equal(t, public.ID, listed[0].ID)

	status, _ = do(t, srv, http.MethodGet, "/api/events/admin", "", &listed)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, listed, 2)
	assert.Equal(t, hidden.ID, listed[0].ID, "admin list is ordered by date")

	status, _ = do(t, srv, http.MethodGet, "/api/events?startDate=2025-06-01&endDate=2025-06-01", "", &listed)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, listed, 1)

	var updated domain.Event
	status, _ = do(t, srv, http.MethodPut, "/api/events/"+public.ID, `{"notified":true}`, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, updated.Notified)
	assert.Equal(t, "Jalsa", updated.Title)

	status, envelope := do(t, srv, http.MethodGet, "/api/events/does-not-exist", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}

func TestRouter_ParticipationFlow(t *testing.T) {
	srv := newTestServer(t)

	var event domain.Event
	status, _ := do(t, srv, http.MethodPost, "/api/events",
		`{"title":"Ijtema","date":"2025-09-12","category":"Ijtema","createdBy":"admin"}`, &event)
	require.Equal(t, http.StatusCreated, status)
	base := "/api/events/" + event.ID

	status, _ = do(t, srv, http.MethodPost, base+"/participate",
		`{"userId":"u-1","participantName":"Ahmad","participantCategory":"Khuddam","participantCount":"2"}`, nil)
	require.Equal(t, http.StatusCreated, status)

	status, envelope := do(t, srv, http.MethodPost, base+"/participate",
		`{"userId":"u-1","participantName":"Ahmad","participantCategory":"Khuddam"}`, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, helpers.ErrCodeDuplicate, envelope.Error.Code)

	status, _ = do(t, srv, http.MethodPost, base+"/participate",
		`{"userId":"u-2","lajnaCount":3,"categoryCounts":{"Gäste":1}}`, nil)
	require.Equal(t, http.StatusCreated, status)

	status, envelope = do(t, srv, http.MethodPost, "/api/events/missing/participate",
		`{"userId":"u-1","participantName":"Ahmad","participantCategory":"Khuddam"}`, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)

	var stats domain.EventStatistics
	status, _ = do(t, srv, http.MethodGet, base+"/statistics", "", &stats)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.CategoryCounts{"Khuddam": 2, "Lajna": 3, "Gäste": 1}, stats.CategoryCount)
	assert.Equal(t, 6, stats.TotalParticipants)
	assert.Len(t, stats.Participants, 2)

	var all []domain.EventStatistics
	status, _ = do(t, srv, http.MethodGet, "/api/statistics", "", &all)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, all, 1)
	assert.Equal(t, 6, all[0].TotalParticipants)

	var msg helpers.MessageResponse
	status, _ = do(t, srv, http.MethodDelete, base, "", &msg)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, msg.Message)

	var parts []domain.Participation
	status, _ = do(t, srv, http.MethodGet, base+"/participants", "", &parts)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, parts)
	assert.Empty(t, parts)

	status, _ = do(t, srv, http.MethodDelete, base, "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestRouter_HealthAndFallback(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := do(t, srv, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Nil(t, envelope.Error)

	status, envelope = do(t, srv, http.MethodGet, "/api/nothing-here", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}

func TestRouter_ParticipateIsRateLimited(t *testing.T) {
	events := memory.NewEventRepository()
	parts := memory.NewParticipationRepository()
	mux := NewRouter(
		controllers.NewEventController(testLogger, services.NewEventService(events, parts, testLogger, time.Second)),
		controllers.NewParticipationController(testLogger, services.NewParticipationService(events, parts, true, testLogger, time.Second)),
		controllers.NewStatisticsController(testLogger, services.NewStatisticsService(events, parts, time.Second)),
		middleware.NewRateLimiter(1, 1),
	)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	body := `{"userId":"u-1","participantName":"A","participantCategory":"Ansar"}`
	status, _ := do(t, srv, http.MethodPost, "/api/events/x/participate", body, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, envelope := do(t, srv, http.MethodPost, "/api/events/x/participate", body, nil)
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, helpers.ErrCodeTooManyRequests, envelope.Error.Code)
}
