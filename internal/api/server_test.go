package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(token string) http.Handler {
	return (&Server{Token: token}).Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(""), http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestContract(t *testing.T) {
	rec := doRequest(t, newTestServer(""), http.MethodGet, "/api/v1/contract", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Modes map[string][]string `json:"modes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Modes, 4)
	assert.ElementsMatch(t, []string{"status", "found_items", "missing_items"}, body.Modes["1"])
	assert.Contains(t, body.Modes["3"], "unused_waivers")
	assert.NotContains(t, body.Modes["4"], "extra_items")
}

const validateBody = `{
  "item": {
    "id": "SYN-001",
    "requirement": {"value": "1", "patterns": ["Genus"]}
  },
  "records": [{"value": "Genus 21.1", "source_file": "/work/syn.log"}],
  "searched_paths": ["/work/syn.log", "/work/syn.log"]
}`

func TestValidate(t *testing.T) {
	rec := doRequest(t, newTestServer(""), http.MethodPost, "/api/v1/validate", "", validateBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SYN-001", resp.ID)
	assert.Equal(t, "PASS", string(resp.Status))
	assert.Equal(t, []string{"/work/syn.log"}, resp.SearchedPaths, "paths come back deduplicated")
	assert.Contains(t, resp.Result, "found_items")
}

func TestValidate_ConfigMismatchIs422(t *testing.T) {
	body := `{"item": {"id": "BAD-001", "requirement": {"value": "2", "patterns": ["only-one"]}}}`
	rec := doRequest(t, newTestServer(""), http.MethodPost, "/api/v1/validate", "", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID", string(resp.Status))
	require.NotEmpty(t, resp.Diagnostics)
	assert.Contains(t, resp.Diagnostics[0], "config mismatch")
}

func TestValidate_BadRequests(t *testing.T) {
	rec := doRequest(t, newTestServer(""), http.MethodPost, "/api/v1/validate", "", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, newTestServer(""), http.MethodPost, "/api/v1/validate", "", `{"item": {}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate_Auth(t *testing.T) {
	h := newTestServer("s3cret")

	rec := doRequest(t, h, http.MethodPost, "/api/v1/validate", "", validateBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/validate", "wrong", validateBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/validate", "s3cret", validateBody)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFound(t *testing.T) {
	rec := doRequest(t, newTestServer(""), http.MethodGet, "/api/v1/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := doRequest(t, newTestServer(""), http.MethodOptions, "/api/v1/validate", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
