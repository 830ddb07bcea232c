// internal/app/features/errors/errorlog.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger gives handlers one call to log a failure and answer the
// client with a 500. The message shown to the user never includes the
// underlying error.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Internal logs err with the operation name and renders a generic
// server error page.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, op string, err error) {
	e.log.Error(op,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_page",
		page(r, "Something went wrong", "An unexpected error occurred. Please try again.", "/"))
}
