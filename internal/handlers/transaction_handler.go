package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pennywise/client/internal/apiclient"
	"github.com/pennywise/client/internal/audit"
	"github.com/pennywise/client/internal/logger"
	mW "github.com/pennywise/client/internal/middleware"
	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/repository"
	"github.com/pennywise/client/internal/services"
)

// TransactionHandler serves /transactions.
type TransactionHandler struct {
	repo      repository.TransactionRepository
	validator *services.ValidationHelper
	audit     *audit.Logger
}

func NewTransactionHandler(repo repository.TransactionRepository, auditLog *audit.Logger) *TransactionHandler {
	return &TransactionHandler{
		repo:      repo,
		validator: services.NewValidationHelper(),
		audit:     auditLog,
	}
}

// Routes registers the transaction endpoints on r.
func (h *TransactionHandler) Routes(r chi.Router) {
	r.Get("/transactions", h.List)
	r.Post("/transactions", h.Create)
	r.Get("/transactions/{id}", h.Get)
	r.Put("/transactions/{id}", h.Update)
	r.Delete("/transactions/{id}", h.Delete)
}

// List returns one page of transactions matching the query filters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, ok := paging(r)
	if !ok {
		services.SendErrorResponse(w, "page must be >= 0 and size > 0", http.StatusBadRequest, nil)
		return
	}

	filters, err := apiclient.ParseFilterQuery(r.URL.Query())
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if filters.TransactionType != "" && !filters.TransactionType.Valid() {
		services.SendErrorResponse(w, "unknown transactionType", http.StatusBadRequest, nil)
		return
	}

	sort, err := repository.ParseSort(r.URL.Query().Get("sort"))
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	result, err := h.repo.List(r.Context(), filters, page, size, sort)
	if err != nil {
		h.internalError(w, r, "list", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		services.SendErrorResponse(w, "transaction not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		h.internalError(w, r, "get", err)
		return
	}
	respond(w, http.StatusOK, t)
}

// Create stores a new transaction; destinationAmount is computed here.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.payload(w, r)
	if !ok {
		return
	}

	created, err := h.repo.Create(r.Context(), payload.ToTransaction(""))
	if err != nil {
		h.audit.LogError(actor(r), "", "create", err)
		h.internalError(w, r, "create", err)
		return
	}

	h.audit.LogChange(audit.EventCreated, actor(r), created)
	respond(w, http.StatusCreated, created)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.payload(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := h.repo.Update(r.Context(), payload.ToTransaction(id))
	if errors.Is(err, repository.ErrNotFound) {
		services.SendErrorResponse(w, "transaction not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		h.audit.LogError(actor(r), id, "update", err)
		h.internalError(w, r, "update", err)
		return
	}
	h.audit.LogChange(audit.EventUpdated, actor(r), updated)
	respond(w, http.StatusOK, updated)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.repo.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		services.SendErrorResponse(w, "transaction not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		h.audit.LogError(actor(r), id, "delete", err)
		h.internalError(w, r, "delete", err)
		return
	}
	h.audit.LogDelete(actor(r), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) payload(w http.ResponseWriter, r *http.Request) (models.TransactionPayload, bool) {
	var p models.TransactionPayload
	if err := decodeBody(w, r, &p); err != nil {
		return p, false
	}
	if err := h.validator.ValidateTransaction(p); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return p, false
	}
	return p, true
}

func (h *TransactionHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())
	log.Error().Err(err).Str("operation", op).Msg("Transaction store failed")
	services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
}

func actor(r *http.Request) string {
	user, _ := mW.UserFrom(r.Context())
	return user.ID
}
