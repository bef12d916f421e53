package layouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/neverlost-dev/neverlost-api/internal/common"
	"github.com/neverlost-dev/neverlost-api/internal/server/models"
	"github.com/neverlost-dev/neverlost-api/internal/server/store"
)

// layoutDoc is the content-store document shape for a layout.
type layoutDoc struct {
	ID          string               `json:"_id"`
	Type        string               `json:"_type"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	UserID      string               `json:"userId"`
	Objects     []models.SceneObject `json:"objects"`
}

const docType = "layout"

type StoreRepository struct {
	client store.Client
}

func NewStoreRepository(client store.Client) *StoreRepository {
	return &StoreRepository{client: client}
}

func (r *StoreRepository) Create(ctx context.Context, layout *models.Layout) error {
	doc := layoutDoc{
		ID:          layout.ID,
		Type:        docType,
		Name:        layout.Name,
		Description: layout.Description,
		UserID:      layout.UserID,
		Objects:     layout.Objects,
	}
	if _, err := r.client.Create(ctx, doc); err != nil {
		return fmt.Errorf("store error: %w", err)
	}
	return nil
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Layout, error) {
	rows, err := r.client.Fetch(ctx, `*[_type == "layout" && userId == $userId]`,
		map[string]string{"userId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("store error: %w", err)
	}

	out := make([]models.Layout, 0, len(rows))
	for _, raw := range rows {
		var doc layoutDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode layout document: %w", err)
		}
		out = append(out, *doc.toModel())
	}
	return out, nil
}

func (r *StoreRepository) Get(ctx context.Context, id string) (*models.Layout, error) {
	raw, err := r.client.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	var doc layoutDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode layout document: %w", err)
	}
	if doc.Type != docType {
		return nil, common.ErrNotFound
	}
	return doc.toModel(), nil
}

func (r *StoreRepository) ReplaceObjects(ctx context.Context, id string, objects []models.SceneObject) (*models.Layout, error) {
	if objects == nil {
		objects = []models.SceneObject{}
	}

	raw, err := r.client.Patch(ctx, id, map[string]any{"objects": objects})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	var doc layoutDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode layout document: %w", err)
	}
	return doc.toModel(), nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("store error: %w", err)
	}
	return nil
}

func (d *layoutDoc) toModel() *models.Layout {
	objects := d.Objects
	if objects == nil {
		objects = []models.SceneObject{}
	}
	return &models.Layout{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		UserID:      d.UserID,
		Objects:     objects,
	}
}
