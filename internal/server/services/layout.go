package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/neverlost-dev/neverlost-api/internal/common"
	"github.com/neverlost-dev/neverlost-api/internal/logging"
	"github.com/neverlost-dev/neverlost-api/internal/server/models"
	"github.com/neverlost-dev/neverlost-api/internal/server/repositories/layouts"
)

// LayoutService implements owner-scoped layout operations. Every read or
// write against an existing layout verifies that the caller owns it; an
// ownership mismatch is reported as common.ErrNotFound, indistinguishable
// from a layout that does not exist.
type LayoutService struct {
	repo   layouts.Repository
	logger logging.Logger
}

func NewLayoutService(repo layouts.Repository, logger logging.Logger) *LayoutService {
	return &LayoutService{repo: repo, logger: logger}
}

// Create persists a new layout tagged with the owner and returns its id.
// The identifier is generated here rather than by the store.
func (s *LayoutService) Create(ctx context.Context, ownerID, name, description string, objects []models.SceneObject) (string, error) {
	layout := &models.Layout{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		UserID:      ownerID,
		Objects:     objects,
	}
	if err := s.repo.Create(ctx, layout); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "layout created", "layoutId", layout.ID)
	return layout.ID, nil
}

// ListForOwner returns all layouts owned by the caller. Order is whatever
// the store returns.
func (s *LayoutService) ListForOwner(ctx context.Context, ownerID string) ([]models.Layout, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get fetches one layout after the ownership check.
func (s *LayoutService) Get(ctx context.Context, id, ownerID string) (*models.Layout, error) {
	return s.getOwned(ctx, id, ownerID)
}

// Update replaces the layout's object sequence wholesale. A nil objects
// pointer means the field was absent from the request: the stored sequence
// is kept and the layout returned unchanged. An empty slice replaces the
// stored sequence with an empty one.
func (s *LayoutService) Update(ctx context.Context, id, ownerID string, objects *[]models.SceneObject) (*models.Layout, error) {
	existing, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		return existing, nil
	}
	return s.repo.ReplaceObjects(ctx, id, *objects)
}

// Delete removes the layout after the ownership check.
func (s *LayoutService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.getOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *LayoutService) getOwned(ctx context.Context, id, ownerID string) (*models.Layout, error) {
	layout, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if layout.UserID != ownerID {
		return nil, common.ErrNotFound
	}
	return layout, nil
}
