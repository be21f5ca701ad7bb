package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"printshop/internal/http/middleware"
	"printshop/internal/resilience"
	"printshop/internal/service"
)

// Machine-readable error codes carried in the failure envelope.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidID        = "INVALID_ID"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeUpstream         = "UPSTREAM_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// errorPayload is the failure envelope.
type errorPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes the failure envelope. message must be safe to show to
// clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		Error:     message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

// respondError maps a service error kind onto a status and code. Messages of
// validation, not-found and conflict errors are written as is; anything else
// is logged and replaced with a generic message.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, service.ErrUpstream), errors.Is(err, resilience.ErrUnavailable):
		slog.WarnContext(c.UserContext(), "upstream_unavailable", "path", c.Path(), "error", err)
		return writeError(c, fiber.StatusServiceUnavailable, CodeUpstream, "upstream service unavailable, please retry")
	default:
		slog.ErrorContext(c.UserContext(), "request_failed", "path", c.Path(), "error", err)
		return writeError(c, fiber.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return respondError(c, err)
		}

		switch {
		case fe.Code == fiber.StatusNotFound:
			return writeError(c, fe.Code, CodeNotFound, "resource not found")
		case fe.Code == fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, CodeMethodNotAllowed, "method not allowed")
		case fe.Code == fiber.StatusServiceUnavailable:
			return writeError(c, fe.Code, CodeUpstream, "service unavailable")
		case fe.Code < fiber.StatusInternalServerError:
			msg := fe.Message
			if msg == "" {
				msg = http.StatusText(fe.Code)
			}
			return writeError(c, fe.Code, CodeValidation, msg)
		default:
			return writeError(c, fe.Code, CodeInternal, "internal server error")
		}
	}
}
