package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cheapticket/config"
	"cheapticket/infras/otel/mocks"
	"cheapticket/transport/http/middleware"

	"github.com/stretchr/testify/assert"
)

func TestTracing(t *testing.T) {
	recorder := mocks.NewRecorder()
	app := middleware.NewAppMiddleware(recorder, &config.Config{}, nil, nil)

	handler := app.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/hotel", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"POST /v1/hotel"}, recorder.Spans())
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil, nil)

	handler := app.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
