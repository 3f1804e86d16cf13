package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ledgerbook/internal/handler"
)

func healthy(context.Context) error { return nil }

func down(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		db         handler.PingFunc
		redis      handler.Pinger
		wantStatus int
		wantBody   string
	}{
		{"all up", healthy, handler.PingFunc(healthy), http.StatusOK, `"status":"ok"`},
		{"no redis configured", healthy, nil, http.StatusOK, `"status":"ok"`},
		{"database down", down, handler.PingFunc(healthy), http.StatusServiceUnavailable, "database not reachable"},
		{"redis down", healthy, handler.PingFunc(down), http.StatusServiceUnavailable, "redis not reachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db, tt.redis)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
			h.Readiness(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(handler.PingFunc(down), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
