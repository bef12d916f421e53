package store

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemory is a Client backed by a map, used in tests in place of the
// external store. It understands the equality-filter query shapes the
// repositories issue:
//
//	*[_type == "user" && email == $email]
//	*[_type == "layout" && userId == $userId]
//	*[_type == "user"]
type InMemory struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[string]map[string]any)}
}

var queryRe = regexp.MustCompile(`^\*\[_type == "([^"]+)"(?: && (\w+) == \$(\w+))?\]$`)

func (m *InMemory) Fetch(ctx context.Context, query string, params map[string]string) ([]json.RawMessage, error) {
	parts := queryRe.FindStringSubmatch(query)
	if parts == nil {
		return nil, fmt.Errorf("unsupported query %q: %w", query, ErrBadRequest)
	}
	docType, field, param := parts[1], parts[2], parts[3]

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []json.RawMessage
	for _, id := range ids {
		doc := m.docs[id]
		if doc["_type"] != docType {
			continue
		}
		if field != "" && doc[field] != params[param] {
			continue
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (m *InMemory) Create(ctx context.Context, doc any) (json.RawMessage, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	id, _ := stored["_id"].(string)
	if id == "" {
		id = uuid.NewString()
		stored["_id"] = id
	}

	m.mu.Lock()
	m.docs[id] = stored
	m.mu.Unlock()

	return json.Marshal(stored)
}

func (m *InMemory) Patch(ctx context.Context, id string, set map[string]any) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}

	for k, v := range set {
		// Round-trip through JSON so stored values look exactly like they
		// would coming back from the wire.
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var plain any
		if err := json.Unmarshal(raw, &plain); err != nil {
			return nil, err
		}
		doc[k] = plain
	}

	return json.Marshal(doc)
}

func (m *InMemory) GetDocument(ctx context.Context, id string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return json.Marshal(doc)
}

func (m *InMemory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	delete(m.docs, id)
	return nil
}

// CountByType reports how many stored documents carry the given _type.
// Test helper for asserting that an operation performed no store write.
func (m *InMemory) CountByType(docType string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, doc := range m.docs {
		if doc["_type"] == docType {
			n++
		}
	}
	return n
}
