package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/logger"
	"github.com/erp/lpcore/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, body string, headers map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	c.Set(logger.GinRequestIDKey, "req-1")
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestHandleError(t *testing.T) {
	var h BaseHandler

	t.Run("wrapped domain error keeps code and details", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "", nil)
		err := shared.NewPolicyViolationError("EXCEEDS_LP_QUANTITY", "too much").WithDetail("max_allowed", "5")
		h.HandleError(c, fmt.Errorf("reserve: %w", err))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, "EXCEEDS_LP_QUANTITY", info.Code)
		assert.Equal(t, string(shared.KindPolicyViolation), info.Kind)
		assert.Equal(t, "5", info.Details["max_allowed"])
		assert.Equal(t, "req-1", info.RequestID)
		assert.Len(t, c.Errors, 1)
	})

	t.Run("unknown error hides message", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "", nil)
		h.HandleError(c, errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInternal, info.Code)
		assert.NotContains(t, info.Message, "pq")
	})

	t.Run("nil is ignored", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "", nil)
		h.HandleError(c, nil)
		assert.False(t, c.Writer.Written())
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireActor(t *testing.T) {
	var h BaseHandler
	actor := uuid.New()

	c, _ := newTestContext(http.MethodPost, "", map[string]string{logger.ActorHeader: actor.String()})
	got, ok := h.RequireActor(c)
	assert.True(t, ok)
	assert.Equal(t, actor, got)

	c, w := newTestContext(http.MethodPost, "", map[string]string{logger.ActorHeader: "someone"})
	_, ok = h.RequireActor(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeMissingActor, decodeError(t, w).Code)
}

func TestBindJSON(t *testing.T) {
	var h BaseHandler

	c, _ := newTestContext(http.MethodPost, "", nil)
	req := ReasonRequest{Reason: "kept"}
	assert.True(t, h.BindJSON(c, &req))
	assert.Equal(t, "kept", req.Reason)

	c, _ = newTestContext(http.MethodPost, `{"reason":"damaged"}`, nil)
	assert.True(t, h.BindJSON(c, &req))
	assert.Equal(t, "damaged", req.Reason)

	c, w := newTestContext(http.MethodPost, `{"reason":`, nil)
	assert.False(t, h.BindJSON(c, &req))
	assert.Equal(t, dto.ErrCodeInvalidJSON, decodeError(t, w).Code)
}

func TestHasRole(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "", map[string]string{RolesHeader: "picker, QA ,planner"})
	assert.True(t, hasRole(c, QARole))
	assert.False(t, hasRole(c, "admin"))

	c, _ = newTestContext(http.MethodGet, "", nil)
	assert.False(t, hasRole(c, QARole))
}
