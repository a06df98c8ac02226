package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gompdf/labelsheet/pkg/api"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...api.Option) *echo.Echo {
	t.Helper()
	o := api.DefaultOptions()
	o.WorkDir = t.TempDir()
	o.MaxCount = 50
	for _, opt := range opts {
		opt(&o)
	}
	h := NewHandler(api.NewWithOptions(o), Defaults{Location: "TXT", Count: 3}, "test", nil)
	return New(h, nil, false, time.Minute, time.Minute)
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHandleGenerate(t *testing.T) {
	e := newTestServer(t)

	rec := post(e, `{"location": "A", "count": "3"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="generated_barcodes.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "3", rec.Header().Get("X-Labels-Placed"))
	assert.Equal(t, "0", rec.Header().Get("X-Labels-Skipped"))
	assert.Equal(t, "1", rec.Header().Get("X-Pages"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestHandleGenerateDefaults(t *testing.T) {
	e := newTestServer(t)

	rec := post(e, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-Labels-Placed"))
}

func TestHandleGenerateSkippedLabelsStillSucceed(t *testing.T) {
	e := newTestServer(t)

	rec := post(e, `{"location": "Ä", "count": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Labels-Placed"))
	assert.Equal(t, "2", rec.Header().Get("X-Labels-Skipped"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestHandleGenerateValidation(t *testing.T) {
	e := newTestServer(t)

	for _, body := range []string{`{"count": "ten"}`, `{"count": -1}`, `{"count": 51}`, `{"location": 1}`} {
		rec := post(e, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code, body)
	}

	rec := post(e, `{"count":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, rec).Code)
}

func TestHandleGenerateServerFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	e := newTestServer(t, api.WithWorkDir(filepath.Join(blocker, "work")))

	rec := post(e, `{"location": "A", "count": 1}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Message, "document generation failed")
	assert.NotEqual(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
}

func TestHandleHealth(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", decodeError(t, rec).Code)
}
