package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrewpaige1/revisa-api/generator"
	"github.com/andrewpaige1/revisa-api/middleware"
	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/srs"
	"github.com/andrewpaige1/revisa-api/store"
	"github.com/andrewpaige1/revisa-api/utils"
)

const (
	defaultGenerateTimeout = 60 * time.Second
	maxBodyBytes           = 1 << 20
)

// validate is shared by every handler.
var validate = newValidator()

type DBHandler struct {
	Store *store.Store
	// Generator is nil when no model is configured; generation then answers 503.
	Generator       generator.Generator
	GenerateTimeout time.Duration
	Now             func() time.Time
}

func NewDBHandler(s *store.Store, gen generator.Generator, generateTimeout time.Duration) *DBHandler {
	if generateTimeout <= 0 {
		generateTimeout = defaultGenerateTimeout
	}
	return &DBHandler{
		Store:           s,
		Generator:       gen,
		GenerateTimeout: generateTimeout,
		Now:             time.Now,
	}
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *DBHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// decode reads and validates a JSON body, answering 400 on failure.
func (h *DBHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := utils.DecodeJSON(r, dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return "Invalid request: " + strings.Join(parts, "; ")
}

// currentUser returns the user attached by SyncUserMiddleware, answering 401
// when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

// writeError maps store, srs and generator errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, store.ErrInvalid), errors.Is(err, srs.ErrInvalidQuality):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, generator.ErrPartialGeneration), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Flashcard generation failed", http.StatusBadGateway)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
