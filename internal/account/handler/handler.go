// Package handler exposes account workflows over HTTP. It is a thin layer:
// requests are decoded and validated at the boundary, then delegated to the
// service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finattr/internal/account/models"
	"finattr/internal/account/service"
	"finattr/internal/attribute"
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

// Register mounts the account routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Route("/{accountID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/validate", h.handleValidate)
			r.Post("/clone", h.handleClone)
			r.Route("/attributes/{class}", func(r chi.Router) {
				r.Put("/", h.handleSetAttribute)
				r.Delete("/", h.handleClearAttribute)
				r.Get("/requirement", h.handleRequirement)
			})
		})
	})
}

func (h *Handler) accountID(r *http.Request) (domain.AccountID, error) {
	return domain.ParseAccountID(chi.URLParam(r, "accountID"))
}

func (h *Handler) class(r *http.Request) (attribute.AccountClass, error) {
	name := chi.URLParam(r, "class")
	class, ok := attribute.AccountCatalog.ByName(name)
	if !ok {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "unknown attribute class: "+name)
	}
	return class, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	category := models.CategoryNone
	if req.Category != "" {
		var ok bool
		category, ok = models.ParseCategory(req.Category)
		if !ok {
			shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown category: "+req.Category))
			return
		}
	}
	acct, err := h.svc.Create(r.Context(), req.Name, category, req.TaxExempt)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, accountResponse(acct))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	accts, err := h.svc.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]accountBody, 0, len(accts))
	for _, a := range accts {
		out = append(out, accountResponse(a))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := h.accountID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	acct, err := h.svc.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, accountResponse(acct))
}

func (h *Handler) handleSetAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := h.accountID(r)
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
	spec, _ := attribute.AccountCatalog.Spec(class)
	val, err := req.decode(spec.Kind)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.SetAttribute(r.Context(), id, class, val); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := h.accountID(r)
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
	id, err := h.accountID(r)
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
	shared.WriteJSON(w, http.StatusOK, requirementBody{
		Class: class.String(),
		Level: level.String(),
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	id, err := h.accountID(r)
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

func (h *Handler) handleClone(w http.ResponseWriter, r *http.Request) {
	id, err := h.accountID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req cloneAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	clone, err := h.svc.Clone(r.Context(), id, req.Name)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, accountResponse(clone))
}
