package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"video2md/internal/app/model"
)

type stubDAO struct {
	runs []model.Run
}

func (s *stubDAO) Close() error                              { return nil }
func (s *stubDAO) CheckIfProcessed(input string) (int, error) { return 0, sql.ErrNoRows }
func (s *stubDAO) RecordRun(run model.Run) error             { return nil }

func (s *stubDAO) GetAll(limit int) ([]model.Run, error) {
	if limit > 0 && limit < len(s.runs) {
		return s.runs[:limit], nil
	}
	return s.runs, nil
}

func (s *stubDAO) GetByID(id int) (*model.Run, error) {
	for i := range s.runs {
		if s.runs[i].ID == id {
			return &s.runs[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dao := &stubDAO{runs: []model.Run{
		{ID: 1, Input: "https://youtu.be/one", Kind: "remote", Title: "One", FinishedAt: time.Now()},
		{ID: 2, Input: "/videos/two.mp4", Kind: "local", Title: "Two", HasError: true, FailedStage: "transcribe"},
	}}
	return NewServer(":0", dao, zap.NewNop().Sugar())
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestListRuns(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
}

func TestListRunsWithLimit(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/api/runs?limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestListRunsRejectsBadLimit(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/api/runs?limit=-3")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(newTestServer(t), http.MethodGet, "/api/runs?limit=many")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRun(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/api/runs/2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "transcribe")
}

func TestGetRunNotFound(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/api/runs/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRunBadID(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/api/runs/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	w := doRequest(newTestServer(t), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}
