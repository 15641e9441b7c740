package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"chat-service/common/apperr"
	"chat-service/database"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// Codes surfaced by the error handler for failures that do not declare
// their own code.
const (
	CodeUniqueConstraintViolation = "UNIQUE_CONSTRAINT_VIOLATION"
	CodeRecordNotFound            = "RECORD_NOT_FOUND"
	CodeDatabaseError             = "DATABASE_ERROR"
	CodeValidationError           = "VALIDATION_ERROR"
	CodeInvalidToken              = "INVALID_TOKEN"
	CodeTokenExpired              = "TOKEN_EXPIRED"
	CodeInternalError             = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON envelope every failed request resolves to.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorHandler is the terminal error stage of the middleware chain. It must
// be registered before every middleware and handler that can fail, so its
// c.Next() wraps the whole chain. Handlers report failures with c.Error and
// c.Abort; the last recorded error is logged, classified and written as one
// ErrorResponse. Panics are recovered here and fall through to the generic
// internal error branch.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", r)
				}
				writeError(c, logger, err)
			}
		}()
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		writeError(c, logger, c.Errors.Last().Err)
	}
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("Request failed",
		zap.String("message", err.Error()),
		zap.String("stack", stackOf(err)),
		zap.String("url", c.Request.URL.String()),
		zap.String("method", c.Request.Method),
		zap.String("ip", c.ClientIP()),
	)
	if c.Writer.Written() {
		return
	}
	status, body := Classify(err)
	c.Abort()
	c.JSON(status, body)
}

// Classify maps an error to the status and envelope the client receives.
// First match wins; anything unrecognized collapses into a fixed internal
// error so handler internals never leak.
func Classify(err error) (int, ErrorResponse) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Status, ErrorResponse{Message: appErr.Message, Code: appErr.Code}
	}

	var dbErr *database.Error
	if errors.As(err, &dbErr) {
		switch dbErr.Code {
		case database.CodeUniqueViolation:
			return http.StatusConflict, ErrorResponse{Message: "Unique constraint violation", Code: CodeUniqueConstraintViolation}
		case database.CodeRecordNotFound:
			return http.StatusNotFound, ErrorResponse{Message: "Record not found", Code: CodeRecordNotFound}
		default:
			return http.StatusInternalServerError, ErrorResponse{Message: "Database error", Code: CodeDatabaseError}
		}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Code: CodeValidationError}
	}

	if errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) {
		return http.StatusUnauthorized, ErrorResponse{Message: "Invalid token", Code: CodeInvalidToken}
	}
	if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet) {
		return http.StatusUnauthorized, ErrorResponse{Message: "Token expired", Code: CodeTokenExpired}
	}

	return http.StatusInternalServerError, ErrorResponse{Message: "Internal server error", Code: CodeInternalError}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func stackOf(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%+v", st.StackTrace())
	}
	return string(debug.Stack())
}
