package users

import (
	"context"

	"github.com/neverlost-dev/neverlost-api/internal/server/models"
)

// Repository is the user directory: lookup by the two unique attributes plus
// creation. Lookups return common.ErrNotFound when no user matches.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
