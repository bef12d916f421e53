package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neverlost-dev/neverlost-api/internal/common"
	"github.com/neverlost-dev/neverlost-api/internal/server/models"
	"github.com/neverlost-dev/neverlost-api/internal/server/store"
)

// userDoc is the content-store document shape for a user record.
type userDoc struct {
	ID       string `json:"_id,omitempty"`
	Type     string `json:"_type"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

const docType = "user"

type StoreRepository struct {
	client store.Client
}

func NewStoreRepository(client store.Client) *StoreRepository {
	return &StoreRepository{client: client}
}

func (r *StoreRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findBy(ctx, `*[_type == "user" && email == $email]`, map[string]string{"email": email})
}

func (r *StoreRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findBy(ctx, `*[_type == "user" && username == $username]`, map[string]string{"username": username})
}

func (r *StoreRepository) findBy(ctx context.Context, query string, params map[string]string) (*models.User, error) {
	rows, err := r.client.Fetch(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("store error: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}

	var doc userDoc
	if err := json.Unmarshal(rows[0], &doc); err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	return doc.toModel(), nil
}

func (r *StoreRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := userDoc{
		Type:     docType,
		Username: user.Username,
		Email:    user.Email,
		Password: user.PasswordHash,
	}

	raw, err := r.client.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("store error: %w", err)
	}

	var created userDoc
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("decode created user: %w", err)
	}
	return created.toModel(), nil
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
	}
}
