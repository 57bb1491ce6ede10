package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLoggerWritesCompletionLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New("production", &buf)

	h := middleware.RequestID(StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/x", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "Request completed", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, http.StatusNotFound, line["status"])
	assert.EqualValues(t, 4, line["bytes_written"])
	assert.Equal(t, "/api/v1/sessions/x", line["path"])
	assert.NotEmpty(t, line["req_id"])
}

func TestNewDevelopmentLoggerIsVerbose(t *testing.T) {
	var buf bytes.Buffer
	New("development", &buf).Debug("hello")
	assert.Contains(t, buf.String(), "hello")

	buf.Reset()
	New("production", &buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
