package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pennywise/client/internal/models"
)

// Resource performs the CRUD calls for one entity collection. T is the
// record shape returned by the server, P the create/update body.
type Resource[T any, P any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "/transactions".
func NewResource[T any, P any](c *Client, path string) *Resource[T, P] {
	return &Resource[T, P]{client: c, path: path}
}

// List fetches one page. query carries resource specific filters.
func (r *Resource[T, P]) List(ctx context.Context, query url.Values, page, size int, sort string) (models.Page[T], error) {
	var out models.Page[T]
	if page < 0 || size <= 0 {
		return out, &RemoteError{Kind: KindClient, Err: ErrInvalidPagination}
	}

	params := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if sort != "" {
		params.Set("sort", sort)
	}

	err := r.client.do(ctx, http.MethodGet, r.path, params, nil, &out)
	return out, err
}

// Get fetches one record; a missing record yields a KindNotFound error.
func (r *Resource[T, P]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out)
	return out, err
}

// Create persists payload and returns the server's copy.
func (r *Resource[T, P]) Create(ctx context.Context, payload P) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPost, r.path, nil, payload, &out)
	return out, err
}

// Update replaces the record id with payload.
func (r *Resource[T, P]) Update(ctx context.Context, id string, payload P) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPut, r.itemPath(id), nil, payload, &out)
	return out, err
}

// Delete removes the record id.
func (r *Resource[T, P]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r *Resource[T, P]) itemPath(id string) string {
	return r.path + "/" + id
}
