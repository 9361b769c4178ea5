// Package quotes exposes the pricing service over HTTP.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/kilianp07/quote-genie/core/logger"
	"github.com/kilianp07/quote-genie/core/model"
)

const maxBodyBytes = 1 << 20

// Pricer answers quote requests.
type Pricer interface {
	Quote(ctx context.Context, req model.QuoteRequest) (model.Quote, error)
	ModelsLoaded() bool
}

// Handler serves the predict and health endpoints.
type Handler struct {
	pricer   Pricer
	validate *validator.Validate
	log      logger.Logger
}

// NewHandler returns a Handler backed by p.
func NewHandler(p Pricer, log logger.Logger) *Handler {
	return &Handler{pricer: p, validate: NewValidator(), log: log}
}

// NewValidator returns a validator that reports JSON field names and knows
// the "segment" and "category" tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("segment", func(fl validator.FieldLevel) bool {
		_, err := model.ParseSegment(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := model.ParseCategory(fl.Field().String())
		return err == nil
	})
	return v
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Predict handles POST /predict.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			h.log.Errorf("validate request: %v", err)
			respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			return
		}
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, validationMessage(fe))
		}
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: details})
		return
	}

	q, err := h.pricer.Quote(r.Context(), req)
	if err != nil {
		h.log.With("http_request_id", middleware.GetReqID(r.Context())).Errorf("quote request: %v", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// HealthResponse reports liveness and whether the trained models are in use.
type HealthResponse struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", ModelsLoaded: h.pricer.ModelsLoaded()})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "segment":
		return fe.Field() + " must be one of: Standard, Premium, Strategic"
	case "category":
		return fe.Field() + " must be one of: General, Electronics, Perishable, Hazardous"
	default:
		return fe.Field() + " is invalid"
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
