package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(t *testing.T, path, target string, h gin.HandlerFunc) (int, dto.Response) {
	t.Helper()
	engine := gin.New()
	engine.GET(path, h)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleError(t *testing.T) {
	var h BaseHandler
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"domain error keeps its code", paper.ErrIncorrectPricing, http.StatusBadRequest, "INCORRECT_PRICING"},
		{"wrapped domain error", fmt.Errorf("publish: %w", paper.ErrPaperNotFound), http.StatusNotFound, "PAPER_NOT_FOUND"},
		{"authorization", shared.ErrUnauthorized, http.StatusForbidden, "UNAUTHORIZED"},
		{"infrastructure error", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := run(t, "/", "/", func(c *gin.Context) { h.HandleError(c, tt.err) })
			assert.Equal(t, tt.status, status)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}

	_, resp := run(t, "/", "/", func(c *gin.Context) { h.HandleError(c, errors.New("secret detail")) })
	assert.NotContains(t, resp.Error.Message, "secret")
}

func TestPaperParams(t *testing.T) {
	var h BaseHandler
	handle := func(c *gin.Context) {
		owner, id, ok := h.PaperParams(c)
		if ok {
			h.Success(c, gin.H{"owner": owner, "id": id})
		}
	}

	status, resp := run(t, "/papers/:owner/:id", "/papers/alice/42", handle)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"owner": "alice", "id": float64(42)}, resp.Data)

	status, resp = run(t, "/papers/:owner/:id", "/papers/alice/-1", handle)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)

	status, resp = run(t, "/papers/:owner/:id", "/papers/%20/1", handle)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_IDENTITY", resp.Error.Code)
}

func TestCaller_Unauthenticated(t *testing.T) {
	var h BaseHandler
	status, resp := run(t, "/", "/", func(c *gin.Context) { h.Caller(c) })
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrCodeUnauthenticated, resp.Error.Code)
}

func TestCurrency_Format(t *testing.T) {
	sol := Currency{Decimals: 9, Symbol: "SOL"}
	assert.Equal(t, "0.001020000 SOL", sol.Format(1_020_000))
	assert.Equal(t, "0.000000000 SOL", sol.Format(0))
	assert.Equal(t, "1.50", Currency{Decimals: 2}.Format(150))
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestSystemHandler_Health(t *testing.T) {
	clock := shared.FixedClock{At: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	healthy := NewSystemHandler("paperfi", "1.0.0", clock, pingFunc(func(context.Context) error { return nil }))
	status, resp := run(t, "/health", "/health", healthy.Health)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", resp.Data.(map[string]any)["status"])

	down := NewSystemHandler("paperfi", "1.0.0", clock, pingFunc(func(context.Context) error { return errors.New("connection refused") }))
	status, resp = run(t, "/health", "/health", down.Health)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", resp.Data.(map[string]any)["status"])

	status, resp = run(t, "/info", "/info", healthy.GetSystemInfo)
	assert.Equal(t, http.StatusOK, status)
	info := resp.Data.(map[string]any)
	assert.Equal(t, "paperfi", info["name"])
	assert.Equal(t, "0s", info["uptime"])
}
