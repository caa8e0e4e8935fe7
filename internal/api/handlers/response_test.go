package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var v struct {
		ID int64 `json:"id"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id": 5}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, int64(5), v.ID)

	empty := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(empty, &v), ErrEmptyBody)

	broken := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":`))
	assert.Error(t, DecodeJSON(broken, &v))
}

func TestRespondRejection(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondRejection(rec, http.StatusConflict, CodeCapacityExceeded, "мест нет")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeCapacityExceeded, body.Code)
	assert.Equal(t, "мест нет", body.Error)
}

func TestRespondJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestRespondInternalError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondInternalError(rec)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeInternal, body.Code)
}
