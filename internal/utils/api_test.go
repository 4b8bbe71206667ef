package utils_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btair/btair/internal/utils"
)

type testResponse struct {
	Name  string `json:"name" xml:"name"`
	Value int    `json:"value" xml:"value"`
}

func TestJsonDecodeBody(t *testing.T) {
	t.Run("valid json", func(t *testing.T) {
		body, err := json.Marshal(map[string]interface{}{"name": "test", "value": 123})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))

		var dst testResponse
		assert.NoError(t, utils.JsonDecodeBody(req, &dst))
		assert.Equal(t, testResponse{Name: "test", Value: 123}, dst)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

		var dst testResponse
		assert.Error(t, utils.JsonDecodeBody(req, &dst))
	})
}

func TestRenderResponse(t *testing.T) {
	res := testResponse{Name: "test", Value: 123}

	t.Run("defaults to json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		utils.RenderResponse(req, rec, http.StatusOK, res)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got testResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, res, got)
	})

	t.Run("honours xml accept header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/xml")
		rec := httptest.NewRecorder()

		utils.RenderResponse(req, rec, http.StatusOK, res)

		assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))

		var got utils.XMLResponse
		assert.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &got))
	})

	t.Run("renders api errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		ae := utils.NewBadRequest("bad input")
		utils.RenderResponse(req, rec, ae.StatusCode, ae)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "bad input")
	})
}

func TestAllowedMethods(t *testing.T) {
	handler := utils.AllowedMethods(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAllowedContentTypes(t *testing.T) {
	handler := utils.AllowedContentTypes(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "application/json")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
