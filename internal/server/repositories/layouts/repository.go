package layouts

import (
	"context"

	"github.com/neverlost-dev/neverlost-api/internal/server/models"
)

// Repository persists layout documents. Ownership checks belong to the
// service layer; these operations address layouts by id alone. Get and
// ReplaceObjects return common.ErrNotFound for unknown ids.
type Repository interface {
	Create(ctx context.Context, layout *models.Layout) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Layout, error)
	Get(ctx context.Context, id string) (*models.Layout, error)
	ReplaceObjects(ctx context.Context, id string, objects []models.SceneObject) (*models.Layout, error)
	Delete(ctx context.Context, id string) error
}
