package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskpalette/pkg/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Error())

	svc := newTestService(t)
	RegisterRoutes(r, svc)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHTTPCreateAndGet(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tasks", CreateInput{
		Title:       "Backup DB",
		TriggerType: Manual,
		Apps:        []string{"drive"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, 0, created.RunCount)

	w = doJSON(t, r, http.MethodGet, "/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, created, got)
}

func TestHTTPGetNotFoundShape(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/tasks/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestHTTPCreateValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tasks", CreateInput{Title: "  ", TriggerType: Manual})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body["error"], "title")
}

func TestHTTPListAndSearch(t *testing.T) {
	r, svc := newTestRouter(t)
	require.NoError(t, Seed(svc.db))

	w := doJSON(t, r, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all []Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 7)

	w = doJSON(t, r, http.MethodGet, "/tasks?q=news", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var filtered []Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	require.Equal(t, "Send Weekly Newsletter", filtered[0].Title)
}

func TestHTTPSuggest(t *testing.T) {
	r, svc := newTestRouter(t)
	require.NoError(t, Seed(svc.db))

	w := doJSON(t, r, http.MethodGet, "/tasks/suggest?q=github", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.NotEmpty(t, results)
	require.Equal(t, "Analyze GitHub Issues", results[0].Title)
}

func TestHTTPPatch(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tasks", CreateInput{Title: "X", Description: "old", TriggerType: Manual})
	require.Equal(t, http.StatusCreated, w.Code)
	var created Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPatch, "/tasks/"+created.ID, map[string]string{"description": "new"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "X", updated.Title)
	require.Equal(t, "new", updated.Description)
	require.Greater(t, updated.UpdatedAt, created.UpdatedAt)
}

func TestHTTPDelete(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tasks", CreateInput{Title: "X", TriggerType: Manual})
	var created Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, "/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	// Repeat delete is a distinguishable failure, not a silent success.
	w = doJSON(t, r, http.MethodDelete, "/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPRun(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tasks", CreateInput{Title: "X", TriggerType: Manual})
	var created Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/tasks/%s/run", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res RunResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.True(t, res.Success)
	require.Equal(t, "Task executed successfully", res.Message)
	require.NotNil(t, res.Task)
	require.Equal(t, 1, res.Task.RunCount)
	require.NotNil(t, res.Task.LastRun)
}

func TestHTTPRunNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tasks/missing/run", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestHTTPInvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
