package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists the sellable catalog: stocked parts and labour items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreatePart(ctx context.Context, part *models.Part) error
	UpdatePart(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeletePart(ctx context.Context, id uuid.UUID) error
	FindPart(ctx context.Context, id uuid.UUID) (*models.Part, error)
	SearchParts(ctx context.Context, query, category string) ([]models.Part, error)
	ListLowStock(ctx context.Context, threshold int) ([]models.Part, error)
	CreateServiceItem(ctx context.Context, item *models.ServiceItem) error
	UpdateServiceItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteServiceItem(ctx context.Context, id uuid.UUID) error
	FindServiceItem(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error)
	ListServiceItems(ctx context.Context) ([]models.ServiceItem, error)
}
