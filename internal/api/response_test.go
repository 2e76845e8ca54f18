package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babysteps/babysteps/internal/log"
)

// decodeErrorEnvelope decodes the standard error response body.
func decodeErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	writeJSON(w, http.StatusOK, map[string]string{"message": "hello"}, log.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Length"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "hello", result["message"])
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()

	// Channels cannot be JSON encoded.
	writeJSON(w, http.StatusOK, make(chan int), log.NewNop())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	writeError(w, http.StatusNotFound, "not_found", "Baby not found", log.NewNop())

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, "not_found", resp.Error)
	assert.Equal(t, "Baby not found", resp.Message)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Nora"}`))

		var dst payload
		ok := decodeJSON(w, r, &dst, log.NewNop())

		require.True(t, ok)
		assert.Equal(t, "Nora", dst.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		var dst payload
		ok := decodeJSON(w, r, &dst, log.NewNop())

		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_json", decodeErrorEnvelope(t, w).Error)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Nora","extra":1}`))

		var dst payload
		ok := decodeJSON(w, r, &dst, log.NewNop())

		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		w := httptest.NewRecorder()
		big := `{"name":"` + strings.Repeat("x", 1<<21) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))

		var dst payload
		ok := decodeJSON(w, r, &dst, log.NewNop())

		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
