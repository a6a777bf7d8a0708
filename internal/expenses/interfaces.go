package expenses

import (
	"context"

	"github.com/google/uuid"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists the expense book.
type Repository interface {
	Create(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDate(ctx context.Context, date string) ([]models.Expense, error)
	ListRange(ctx context.Context, from, to string) ([]models.Expense, error)
}
