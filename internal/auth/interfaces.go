package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists till operators.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}
