package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pennywise/client/internal/repository"
	"github.com/pennywise/client/internal/services"
)

// CollectionHandler serves CRUD endpoints for wallets or categories.
type CollectionHandler[T repository.Entity[T]] struct {
	name      string
	items     *repository.Collection[T]
	validator *services.ValidationHelper
}

// NewCollectionHandler serves items under /<name>.
func NewCollectionHandler[T repository.Entity[T]](name string, items *repository.Collection[T]) *CollectionHandler[T] {
	return &CollectionHandler[T]{
		name:      name,
		items:     items,
		validator: services.NewValidationHelper(),
	}
}

func (h *CollectionHandler[T]) Routes(r chi.Router) {
	r.Get("/"+h.name, h.List)
	r.Post("/"+h.name, h.Create)
	r.Get("/"+h.name+"/{id}", h.Get)
	r.Put("/"+h.name+"/{id}", h.Update)
	r.Delete("/"+h.name+"/{id}", h.Delete)
}

func (h *CollectionHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	page, size, ok := paging(r)
	if !ok {
		services.SendErrorResponse(w, "page must be >= 0 and size > 0", http.StatusBadRequest, nil)
		return
	}
	respond(w, http.StatusOK, h.items.List(page, size))
}

func (h *CollectionHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *CollectionHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	item, ok := h.body(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusCreated, h.items.Create(item.WithID("")))
}

func (h *CollectionHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.body(w, r)
	if !ok {
		return
	}
	updated, err := h.items.Update(chi.URLParam(r, "id"), item)
	if err != nil {
		h.notFound(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (h *CollectionHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.items.Delete(chi.URLParam(r, "id")); err != nil {
		h.notFound(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CollectionHandler[T]) body(w http.ResponseWriter, r *http.Request) (T, bool) {
	var item T
	if err := decodeBody(w, r, &item); err != nil {
		return item, false
	}
	if err := h.validator.ValidateStruct(item); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return item, false
	}
	return item, true
}

func (h *CollectionHandler[T]) notFound(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		services.SendErrorResponse(w, "not found", http.StatusNotFound, nil)
		return
	}
	services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
}
