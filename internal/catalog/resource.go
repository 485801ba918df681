package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mrlokans/catalog/internal/entities"
)

// Payload is a flat request body holding exactly the editable fields of a
// record. Optional values that were left empty are sent as JSON null.
type Payload map[string]any

// Resource performs the REST operations of one catalog collection.
type Resource[T entities.Record] struct {
	client *Client
	desc   Descriptor
}

// NewResource binds a descriptor to a client.
func NewResource[T entities.Record](client *Client, desc Descriptor) *Resource[T] {
	return &Resource[T]{client: client, desc: desc}
}

// Descriptor returns the collection description the resource was built with.
func (r *Resource[T]) Descriptor() Descriptor {
	return r.desc
}

// List fetches the whole collection. A body that is not JSON is reported as a
// NetworkError; a JSON body without the collection key as EmptyResultError.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	op := "list " + r.desc.Plural

	resp, err := r.client.do(ctx, http.MethodGet, r.desc.ListPath, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	raw, ok := body[r.desc.ListKey]
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &EmptyResultError{Key: r.desc.ListKey}
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("failed to decode %s: %w", r.desc.ListKey, err)}
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Create posts a new record and returns the server's representation of it.
func (r *Resource[T]) Create(ctx context.Context, payload Payload) (T, error) {
	var created T
	op := "create " + r.desc.Name

	resp, err := r.client.do(ctx, http.MethodPost, r.desc.CollectionPath, payload)
	if err != nil {
		return created, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return created, readServerError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return created, &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return created, nil
}

// Update replaces the editable fields of record id.
func (r *Resource[T]) Update(ctx context.Context, id string, payload Payload) error {
	resp, err := r.client.do(ctx, http.MethodPut, r.itemPath(id), payload)
	if err != nil {
		return &NetworkError{Op: "update " + r.desc.Name, Err: err}
	}
	if !isSuccess(resp) {
		defer resp.Body.Close()
		return readServerError(resp)
	}
	drain(resp)
	return nil
}

// Remove deletes record id.
func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	resp, err := r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil)
	if err != nil {
		return &NetworkError{Op: "delete " + r.desc.Name, Err: err}
	}
	if !isSuccess(resp) {
		defer resp.Body.Close()
		return readServerError(resp)
	}
	drain(resp)
	return nil
}

// FetchFormOptions loads the reference lists for this resource's form.
func (r *Resource[T]) FetchFormOptions(ctx context.Context) (entities.FormOptions, error) {
	var options entities.FormOptions
	if r.desc.FormOptionsPath == "" {
		return options, ErrNoFormOptions
	}
	op := "fetch " + r.desc.Name + " form options"

	resp, err := r.client.do(ctx, http.MethodGet, r.desc.FormOptionsPath, nil)
	if err != nil {
		return options, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return options, readServerError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&options); err != nil {
		return options, &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return options, nil
}

func (r *Resource[T]) itemPath(id string) string {
	return r.desc.CollectionPath + "/" + url.PathEscape(id)
}
