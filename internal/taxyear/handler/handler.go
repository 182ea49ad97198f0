// Package handler exposes tax-year workflows over HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"finattr/internal/attribute"
	"finattr/internal/taxyear/models"
	"finattr/internal/taxyear/service"
	"finattr/internal/transport/http/shared"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the tax-year routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tax-years", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Route("/{taxYearID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/validate", h.handleValidate)
			r.Post("/roll", h.handleRoll)
			r.Route("/attributes/{class}", func(r chi.Router) {
				r.Put("/", h.handleSetAttribute)
				r.Delete("/", h.handleClearAttribute)
				r.Get("/requirement", h.handleRequirement)
			})
		})
	})
}

type createTaxYearRequest struct {
	StartYear int    `json:"start_year"`
	Regime    string `json:"regime"`
}

type setAttributeRequest struct {
	Value string `json:"value"`
}

type taxYearBody struct {
	ID         string    `json:"id"`
	StartYear  int       `json:"start_year"`
	Regime     string    `json:"regime,omitempty"`
	Attributes int       `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type requirementBody struct {
	Class string `json:"class"`
	Level string `json:"level"`
}

type violationBody struct {
	Kind   string `json:"kind"`
	Class  string `json:"class"`
	Detail string `json:"detail,omitempty"`
}

type validationBody struct {
	Valid      bool            `json:"valid"`
	Violations []violationBody `json:"violations"`
}

func taxYearResponse(t *models.TaxYear) taxYearBody {
	return taxYearBody{
		ID:         t.ID.String(),
		StartYear:  t.StartYear,
		Regime:     t.Regime.String(),
		Attributes: t.Attributes().LiveCount(),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (h *Handler) taxYearID(r *http.Request) (domain.TaxYearID, error) {
	return domain.ParseTaxYearID(chi.URLParam(r, "taxYearID"))
}

func (h *Handler) class(r *http.Request) (attribute.TaxYearClass, error) {
	name := chi.URLParam(r, "class")
	class, ok := attribute.TaxYearCatalog.ByName(name)
	if !ok {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "unknown attribute class: "+name)
	}
	return class, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaxYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	regime := models.RegimeNone
	if req.Regime != "" {
		var ok bool
		regime, ok = models.ParseRegime(req.Regime)
		if !ok {
			shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown regime: "+req.Regime))
			return
		}
	}
	year, err := h.svc.Create(r.Context(), req.StartYear, regime)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, taxYearResponse(year))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	years, err := h.svc.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]taxYearBody, 0, len(years))
	for _, y := range years {
		out = append(out, taxYearResponse(y))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := h.taxYearID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	year, err := h.svc.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, taxYearResponse(year))
}

func (h *Handler) handleSetAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := h.taxYearID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	class, err := h.class(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req setAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	// Every tax-year attribute is a decimal.
	d, err := decimal.NewFromString(req.Value)
	if err != nil {
		shared.WriteError(w, dErrors.Wrap(dErrors.CodeInvalidInput, "malformed decimal value", err))
		return
	}
	if err := h.svc.SetAttribute(r.Context(), id, class, attribute.Decimal(d)); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := h.taxYearID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	class, err := h.class(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.ClearAttribute(r.Context(), id, class); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := h.taxYearID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	class, err := h.class(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	level, err := h.svc.Requirement(r.Context(), id, class)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, requirementBody{Class: class.String(), Level: level.String()})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	id, err := h.taxYearID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	violations, err := h.svc.Validate(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := validationBody{Valid: len(violations) == 0, Violations: make([]violationBody, 0, len(violations))}
	for _, v := range violations {
		out.Violations = append(out.Violations, violationBody{
			Kind:   v.Kind.String(),
			Class:  v.Class.String(),
			Detail: v.Detail,
		})
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleRoll(w http.ResponseWriter, r *http.Request) {
	id, err := h.taxYearID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	clone, err := h.svc.Roll(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, taxYearResponse(clone))
}
