package handler

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/logger"
	"github.com/erp/lpcore/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request headers read by the handlers
const (
	IdempotencyKeyHeader = "Idempotency-Key"
	RolesHeader          = "X-Actor-Roles"
)

// QARole grants the capability to change QA dispositions
const QARole = "qa"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(logger.GinRequestIDKey)
}

// actorID returns the acting user from the actor header
func actorID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader(logger.ActorHeader)
	if raw == "" {
		return uuid.Nil, errors.New("actor header is required")
	}
	return uuid.Parse(raw)
}

// hasRole reports whether the comma separated roles header names role
func hasRole(c *gin.Context, role string) bool {
	roles := strings.Split(c.GetHeader(RolesHeader), ",")
	return slices.ContainsFunc(roles, func(r string) bool {
		return strings.EqualFold(strings.TrimSpace(r), role)
	})
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Unchanged sends a success response flagged as a no-op
func (h *BaseHandler) Unchanged(c *gin.Context, data any) {
	resp := dto.NewSuccessResponse(data)
	resp.NoChange = true
	c.JSON(http.StatusOK, resp)
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(dto.ErrorInfo{
		Code:      code,
		Message:   message,
		RequestID: getRequestID(c),
	}))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// RequireActor resolves the actor or writes a 400 and returns false
func (h *BaseHandler) RequireActor(c *gin.Context) (uuid.UUID, bool) {
	id, err := actorID(c)
	if err != nil {
		h.BadRequest(c, dto.ErrCodeMissingActor, "A valid "+logger.ActorHeader+" header is required")
		return uuid.Nil, false
	}
	return id, true
}

// ParseID parses a UUID path parameter or writes a 400 and returns false
func (h *BaseHandler) ParseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidID, "Invalid "+param+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes the request body into req or writes a 400 and returns false.
// An empty body leaves req untouched.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		h.BadRequest(c, dto.ErrCodeInvalidJSON, err.Error())
		return false
	}
	return true
}

// HandleError converts service errors into responses. Domain errors keep
// their code and details; anything else is logged and reported as a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.StatusFor(domainErr), dto.NewErrorResponse(dto.ErrorInfo{
			Code:      domainErr.Code,
			Kind:      string(domainErr.Kind),
			Message:   domainErr.Message,
			Details:   domainErr.Details,
			RequestID: getRequestID(c),
		}))
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}
