package problem

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"vat-engine/internal/apperr"
)

// StatusError is raised by transports for protocol level failures such as an
// unknown route.
type StatusError struct {
	Status int
	Title  string
}

func (e *StatusError) Error() string { return e.Title }

func NotFound() *StatusError {
	return &StatusError{Status: http.StatusNotFound, Title: "Not Found"}
}

func MethodNotAllowed() *StatusError {
	return &StatusError{Status: http.StatusMethodNotAllowed, Title: "Method Not Allowed"}
}

var statusTypes = map[int]string{
	http.StatusBadRequest:          TypeBadRequest,
	http.StatusNotFound:            TypeNotFound,
	http.StatusMethodNotAllowed:    TypeMethodNotAllowed,
	http.StatusInternalServerError: TypeInternal,
}

// Mapper is the single place where errors become Details. It is safe for
// concurrent use.
type Mapper struct {
	logger *slog.Logger
}

func NewMapper(logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{logger: logger}
}

// Map renders err. instance identifies the failed request (path or RPC
// method).
func (m *Mapper) Map(ctx context.Context, err error, instance string) Details {
	d := render(err)
	d.Instance = instance

	attrs := []any{
		slog.String("instance", instance),
		slog.Int("status", d.Status),
		slog.String("title", d.Title),
	}
	if d.Status >= http.StatusInternalServerError {
		m.logger.ErrorContext(ctx, "request failed", append(attrs, slog.Any("error", err))...)
	} else {
		m.logger.InfoContext(ctx, "request rejected", attrs...)
	}
	return d
}

func render(err error) Details {
	var (
		domainErr     *apperr.DomainError
		validationErr *apperr.ValidationError
		statusErr     *StatusError
	)
	switch {
	case errors.As(err, &domainErr):
		return Details{
			Type:   TypeBadRequest,
			Title:  domainErr.Message,
			Status: http.StatusBadRequest,
			Errors: domainErr.Errors,
		}
	case errors.As(err, &validationErr):
		return Details{
			Type:   TypeValidation,
			Title:  TitleValidation,
			Status: http.StatusBadRequest,
			Fields: validationErr.Diagnostics,
		}
	case errors.As(err, &statusErr):
		return Details{
			Type:   statusTypes[statusErr.Status],
			Title:  statusErr.Title,
			Status: statusErr.Status,
		}
	case err == nil:
		return Details{Type: TypeInternal, Title: "unknown error", Status: http.StatusInternalServerError}
	default:
		return Details{
			Type:   TypeInternal,
			Title:  err.Error(),
			Status: http.StatusInternalServerError,
		}
	}
}
