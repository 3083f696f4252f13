package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/pennywise/client/internal/services"
)

const maxBodyBytes = 1_048_576

// Paging limits for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

var errInvalidBody = errors.New("invalid request body")

// decodeBody reads exactly one JSON object into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return errInvalidBody
	}
	return nil
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// paging reads page and size query parameters.
func paging(r *http.Request) (page, size int, ok bool) {
	page, size = 0, DefaultPageSize
	q := r.URL.Query()

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		page = n
	}
	if s := q.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return 0, 0, false
		}
		size = n
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size, true
}
