package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e          *echo.Echo
	digests    *mockDigestService
	scripts    *mockScriptService
	items      *mockItemService
	automation *mockAutomationService
}

func newTestServer() *testServer {
	s := &testServer{
		e:          echo.New(),
		digests:    &mockDigestService{},
		scripts:    &mockScriptService{},
		items:      &mockItemService{},
		automation: &mockAutomationService{},
	}
	log := logger.NewNop()
	api := s.e.Group("/api/v1")
	NewDigestHandler(s.digests, s.scripts, log).RegisterRoutes(api.Group("/digests"))
	NewItemHandler(s.items, log).RegisterRoutes(api.Group("/items"))
	NewAutomationHandler(s.automation, log).RegisterRoutes(api.Group("/automation"))
	return s
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestDigestHandler_GetDigest(t *testing.T) {
	s := newTestServer()
	s.digests.On("GetByDay", mock.Anything, "2024-06-01").
		Return(&dto.DigestResponse{ID: 1, Day: "2024-06-01", Status: entity.DigestStatusReady}, nil)
	s.digests.On("GetByDay", mock.Anything, "2024-06-02").Return(nil, service.ErrDigestNotFound)

	rec := s.do(http.MethodGet, "/api/v1/digests/2024-06-01", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.DigestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, entity.DigestStatusReady, resp.Status)

	rec = s.do(http.MethodGet, "/api/v1/digests/2024-06-02", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "digest not found", decodeError(t, rec))
}

func TestDigestHandler_BuildDigestOverlaysQueryParams(t *testing.T) {
	s := newTestServer()

	want := entity.DefaultDigestParams()
	want.TopN = 3
	want.ExcludeWar = false
	s.digests.On("CreateOrRefill", mock.Anything, "2024-06-01", want, true, true).
		Return(&dto.BuildDigestResponse{Changed: true, Inserted: 3}, nil)

	rec := s.do(http.MethodPost, "/api/v1/digests/2024-06-01?top_n=3&exclude_war=false&force=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	s.digests.AssertExpectations(t)
}

func TestDigestHandler_BuildDigestErrors(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPost, "/api/v1/digests/2024-06-01?top_n=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.digests.Calls)

	s.digests.On("CreateOrRefill", mock.Anything, "bad-day", mock.Anything, true, false).
		Return(nil, &service.ValidationError{Field: "day", Message: "must be YYYY-MM-DD"})
	rec = s.do(http.MethodPost, "/api/v1/digests/bad-day", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "day: must be YYYY-MM-DD", decodeError(t, rec))

	s.digests.On("CreateOrRefill", mock.Anything, "2024-06-03", mock.Anything, true, false).
		Return(nil, fmt.Errorf("fill digest: %w", errors.New("disk I/O error")))
	rec = s.do(http.MethodPost, "/api/v1/digests/2024-06-03", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec))
}

func TestDigestHandler_ListDigests(t *testing.T) {
	s := newTestServer()
	s.digests.On("List", mock.Anything, 30, 0).Return(&dto.ListDigestsResponse{Limit: 30}, nil)
	s.digests.On("List", mock.Anything, 5, 10).Return(&dto.ListDigestsResponse{Limit: 5, Offset: 10}, nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/digests", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/digests?limit=5&offset=10", "").Code)
	s.digests.AssertExpectations(t)
}

func TestDigestHandler_GetDiagnostics(t *testing.T) {
	s := newTestServer()
	want := entity.DefaultDigestParams()
	want.PreferDays = 3
	s.digests.On("ComputeDiagnostics", mock.Anything, "2024-06-01", want).
		Return(&dto.DiagnosticsResponse{Day: "2024-06-01", PreferDays: []string{"2024-06-01", "2024-05-31", "2024-05-30"}}, nil)

	rec := s.do(http.MethodGet, "/api/v1/digests/2024-06-01/diagnostics?prefer_days=3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.DiagnosticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.PreferDays, 3)
}

func TestDigestHandler_GenerateScript(t *testing.T) {
	s := newTestServer()
	s.scripts.On("GenerateScript", mock.Anything, "2024-06-01", true).Return(&dto.DigestResponse{ScriptModel: "m"}, nil)
	s.scripts.On("GenerateScript", mock.Anything, "2024-06-02", false).Return(nil, service.ErrDigestEmpty)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/digests/2024-06-01/script?force=true", "").Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/v1/digests/2024-06-02/script", "").Code)
}

func TestDigestHandler_AttachArtifacts(t *testing.T) {
	s := newTestServer()
	s.digests.On("AttachArtifacts", mock.Anything, "2024-06-01", mock.MatchedBy(func(req *dto.ArtifactsRequest) bool {
		return req.AudioRef != nil && *req.AudioRef == "audio.mp3" && req.VideoRef == nil
	})).Return(&dto.DigestResponse{AudioRef: "audio.mp3"}, nil)

	rec := s.do(http.MethodPut, "/api/v1/digests/2024-06-01/artifacts", `{"audio_ref":"audio.mp3"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/digests/2024-06-01/artifacts", `{"audio_ref":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemHandler_CreateItem(t *testing.T) {
	s := newTestServer()
	s.items.On("CreateItem", mock.Anything, mock.MatchedBy(func(req *dto.CreateItemRequest) bool { return req.Title == "new" })).
		Return(&dto.CreateItemResponse{ID: 1, Created: true}, nil)
	s.items.On("CreateItem", mock.Anything, mock.MatchedBy(func(req *dto.CreateItemRequest) bool { return req.Title == "dup" })).
		Return(&dto.CreateItemResponse{ID: 1, Created: false}, nil)

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/items", `{"source_name":"s","url":"https://a","title":"new"}`).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/items", `{"source_name":"s","url":"https://a","title":"dup"}`).Code)
}

func TestItemHandler_AddAnalysis(t *testing.T) {
	s := newTestServer()
	s.items.On("AddAnalysis", mock.Anything, uint(5), mock.Anything).Return(&dto.CreateAnalysisResponse{ID: 9, ItemID: 5}, nil)
	s.items.On("AddAnalysis", mock.Anything, uint(6), mock.Anything).Return(nil, service.ErrItemNotFound)

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/items/5/analyses", `{"interest_score":7}`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/v1/items/6/analyses", `{"interest_score":7}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/items/abc/analyses", `{}`).Code)
}

func TestItemHandler_ListItems(t *testing.T) {
	s := newTestServer()
	s.items.On("ListRecent", mock.Anything, dto.DefaultListItemsRequest()).
		Return(&dto.ListItemsResponse{Count: 1, Items: []entity.Item{{ID: 3, Title: "Порт Восточный"}}}, nil).Once()
	want := dto.ListItemsRequest{WindowHours: 48, MinBusiness: 3, MinDFO: 0, RequireCompany: true, ExcludeWar: true, Limit: 10}
	s.items.On("ListRecent", mock.Anything, want).Return(&dto.ListItemsResponse{Items: []entity.Item{}}, nil).Once()
	s.items.On("ListRecent", mock.Anything, mock.MatchedBy(func(req dto.ListItemsRequest) bool { return req.WindowHours == 500 })).
		Return(nil, fmt.Errorf("list: %w", &service.ValidationError{Field: "window_hours", Message: "must be between 1 and 168, got 500"}))

	rec := s.do(http.MethodGet, "/api/v1/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ListItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, uint(3), resp.Items[0].ID)

	rec = s.do(http.MethodGet, "/api/v1/items?window_hours=48&min_business=3&min_dfo=0&require_company=true&exclude_war=true&limit=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/items?window_hours=500", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/items?limit=many", "").Code)
	s.items.AssertExpectations(t)
}

func TestAutomationHandler_Run(t *testing.T) {
	s := newTestServer()
	s.automation.On("Enqueue", mock.Anything, dto.AutomationRunRequest{Day: "2024-06-01", ForceScript: true, TriggeredBy: "api"}).
		Return(&dto.AutomationRunResponse{RunID: "abc", Day: "2024-06-01"}, nil).Once()
	s.automation.On("Enqueue", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: abc", service.ErrRunInProgress))

	rec := s.do(http.MethodPost, "/api/v1/automation/run?day=2024-06-01&force_script=true", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/automation/run", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAutomationHandler_Runs(t *testing.T) {
	s := newTestServer()
	s.automation.On("State", mock.Anything).Return(&dto.AutomationStateResponse{State: map[string]string{"last_ok_run_id": "abc"}}, nil)
	s.automation.On("ListRuns", mock.Anything, 30, 0).Return(&dto.AutomationRunsResponse{Total: 1, Limit: 30, Items: []string{"abc"}}, nil)
	s.automation.On("GetRun", mock.Anything, "abc", 200).Return(&dto.AutomationRunDetail{Run: &dto.AutomationRun{RunID: "abc"}}, nil)
	s.automation.On("GetRun", mock.Anything, "nope", 10).Return(nil, service.ErrRunNotFound)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/automation/state", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/automation/runs", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/automation/runs/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/automation/runs/nope?log_limit=10", "").Code)
}
