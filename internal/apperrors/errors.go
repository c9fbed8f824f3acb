// Package apperrors classifies service failures so controllers can map
// them onto HTTP statuses without matching on message text.
package apperrors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrBadRequest      = errors.New("bad request")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("rate limited")
)

// Specific conflicts. errors.Is matches both the specific error and ErrConflict.
var (
	ErrAlreadyCollaborator = &Error{Kind: ErrConflict, Code: "ALREADY_COLLABORATOR", Message: "user is already a collaborator on this project"}
	ErrAlreadyProcessed    = &Error{Kind: ErrConflict, Code: "ALREADY_PROCESSED", Message: "invitation has already been processed"}
	ErrDuplicateTag        = &Error{Kind: ErrConflict, Code: "DUPLICATE_TAG", Message: "tag with this name already exists"}
)

type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Is matches coded errors by code, so a copy made with WithMessage still
// satisfies errors.Is against the package-level value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if t.Code != "" {
		return e.Code == t.Code
	}

	return e == t
}

func (e *Error) WithMessage(message string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: message}
}

func Unauthenticated(message string) error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func BadRequest(message string) error {
	return &Error{Kind: ErrBadRequest, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func RateLimited(message string) error {
	return &Error{Kind: ErrRateLimited, Message: message}
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError writes {"error": message}. Unclassified errors are logged
// and hidden behind a generic message.
func RespondWithError(ctx *gin.Context, logger *slog.Logger, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.FullPath()),
			slog.String("error", err.Error()))
		ctx.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		ctx.JSON(status, gin.H{"error": appErr.Message})
		return
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
