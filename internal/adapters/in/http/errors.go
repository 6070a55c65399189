package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodePrecondition      = "PRECONDITION_FAILED"
	CodeNoDriver          = "NO_DRIVER_AVAILABLE"
	CodeConflict          = "CONFLICT"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL_ERROR"
)

// classify maps an application error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusBadRequest, CodeInvalidTransition
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusBadRequest, CodeAlreadyExists
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusBadRequest, CodePrecondition
	case errors.Is(err, services.ErrDriverNotFound):
		return http.StatusBadRequest, CodeNoDriver
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, CodeConflict
	}
	return http.StatusInternalServerError, CodeInternal
}

// fail writes err as an Error body. Internal errors are logged and hidden from the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	status, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = "internal server error"
	}
	return ctx.JSON(status, Error{Code: code, Message: message})
}

// NewErrorHandler renders errors that never reached a handler, such as
// unknown routes, binding and request validation failures.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		body := Error{Code: CodeInternal, Message: "internal server error"}
		status := http.StatusInternalServerError

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			body.Message = http.StatusText(status)
			if msg, ok := he.Message.(string); ok {
				body.Message = msg
			}
			switch status {
			case http.StatusNotFound:
				body.Code = CodeNotFound
			case http.StatusInternalServerError:
				body.Code = CodeInternal
			default:
				body.Code = CodeBadRequest
			}
		} else {
			status, body.Code = classify(err)
			if status != http.StatusInternalServerError {
				body.Message = err.Error()
			}
		}
		if status == http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error", "path", ctx.Path(), "error", err)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
