package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/neverlost-dev/neverlost-api/internal/logging"
	"github.com/neverlost-dev/neverlost-api/internal/server/config"
)

// HTTPClient talks to the content store's data API: GROQ-style queries on
// the query endpoint, whole-document create/patch/delete on the mutate
// endpoint. It is safe for concurrent use; every call honors the caller's
// context deadline.
type HTTPClient struct {
	baseURL string
	dataset string
	token   string
	hc      *http.Client
	logger  logging.Logger
}

func NewHTTPClient(cfg *config.Config, logger logging.Logger) *HTTPClient {
	baseURL := cfg.StoreBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.sanity.io/v%s", cfg.StoreProjectID, cfg.StoreAPIVersion)
	}
	return &HTTPClient{
		baseURL: baseURL,
		dataset: cfg.StoreDataset,
		token:   cfg.StoreToken,
		hc:      &http.Client{},
		logger:  logger,
	}
}

func (c *HTTPClient) Fetch(ctx context.Context, query string, params map[string]string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("query", query)
	for k, v := range params {
		// Parameters are JSON-encoded, so string values arrive quoted.
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode param %q: %w", k, err)
		}
		q.Set("$"+k, string(enc))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, q.Encode())
	body, err := c.do(ctx, http.MethodGet, "fetch", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Result []json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return out.Result, nil
}

func (c *HTTPClient) Create(ctx context.Context, doc any) (json.RawMessage, error) {
	results, err := c.mutate(ctx, "create", map[string]any{"create": doc})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("create: empty mutation result: %w", ErrUnavailable)
	}
	return results[0], nil
}

func (c *HTTPClient) Patch(ctx context.Context, id string, set map[string]any) (json.RawMessage, error) {
	results, err := c.mutate(ctx, "patch", map[string]any{
		"patch": map[string]any{"id": id, "set": set},
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("patch %s: %w", id, ErrNotFound)
	}
	return results[0], nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, id string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/data/doc/%s/%s", c.baseURL, c.dataset, url.PathEscape(id))
	body, err := c.do(ctx, http.MethodGet, "get document", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode document response: %w", err)
	}
	if len(out.Documents) == 0 {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return out.Documents[0], nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	_, err := c.mutate(ctx, "delete", map[string]any{
		"delete": map[string]any{"id": id},
	})
	return err
}

// mutate posts a single mutation and returns the resulting documents.
func (c *HTTPClient) mutate(ctx context.Context, op string, mutation map[string]any) ([]json.RawMessage, error) {
	payload, err := json.Marshal(map[string]any{"mutations": []any{mutation}})
	if err != nil {
		return nil, fmt.Errorf("encode mutation: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnDocuments=true", c.baseURL, c.dataset)
	body, err := c.do(ctx, http.MethodPost, op, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var out struct {
		Results []struct {
			Document json.RawMessage `json:"document"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode mutation response: %w", err)
	}

	docs := make([]json.RawMessage, 0, len(out.Results))
	for _, r := range out.Results {
		if len(r.Document) > 0 {
			docs = append(docs, r.Document)
		}
	}
	return docs, nil
}

func (c *HTTPClient) do(ctx context.Context, method, op, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, ErrUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error(ctx, "store request failed", "op", op, "status", resp.StatusCode)
		return nil, statusError(op, resp.StatusCode, body)
	}
	return body, nil
}
