// Package store provides access to the external headless content store that
// persists all documents. Repositories talk to the Client interface; the
// concrete backends are an HTTP client for the real service and an in-memory
// double for tests.
//
// All external failures are classified exactly once, at this boundary, into
// the closed sentinel set below. Downstream code matches with errors.Is and
// never inspects transport details.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type Client interface {
	// Fetch runs a filter query and returns the matching documents. Params
	// are substituted for $name placeholders in the query.
	Fetch(ctx context.Context, query string, params map[string]string) ([]json.RawMessage, error)

	// Create persists a new document and returns it as stored. Documents
	// without an _id get one assigned by the store.
	Create(ctx context.Context, doc any) (json.RawMessage, error)

	// Patch replaces the given top-level fields of an existing document and
	// returns the updated document.
	Patch(ctx context.Context, id string, set map[string]any) (json.RawMessage, error)

	// GetDocument fetches a single document by id.
	GetDocument(ctx context.Context, id string) (json.RawMessage, error)

	// Delete removes a document by id.
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound    = errors.New("document not found")
	ErrPermission  = errors.New("permission denied by store")
	ErrBadRequest  = errors.New("request rejected by store")
	ErrUnavailable = errors.New("store unavailable")
)

// classifyStatus maps an HTTP status from the store into the sentinel set.
// The store's own error text stays server-side; callers wrap the sentinel
// with whatever detail they want logged.
func classifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrPermission
	case status == 404:
		return ErrNotFound
	case status >= 400 && status < 500:
		return ErrBadRequest
	default:
		return ErrUnavailable
	}
}

func statusError(op string, status int, body []byte) error {
	return fmt.Errorf("%s: status %d: %s: %w", op, status, string(body), classifyStatus(status))
}
