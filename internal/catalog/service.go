package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

// DefaultLowStockThreshold matches the reorder badge on the inventory screen.
const DefaultLowStockThreshold = 5

// PartInput carries the writable fields of a stocked part.
type PartInput struct {
	PartName    string
	PartNumber  string
	Category    string
	Price       decimal.Decimal
	BuyingPrice decimal.Decimal
	Stock       int
}

// ServiceItemInput carries the writable fields of a labour item.
type ServiceItemInput struct {
	Name string
	Cost decimal.Decimal
}

// Service manages the sellable catalog.
type Service interface {
	CreatePart(ctx context.Context, input PartInput) (*models.Part, error)
	UpdatePart(ctx context.Context, id uuid.UUID, input PartInput) (*models.Part, error)
	DeletePart(ctx context.Context, id uuid.UUID) error
	GetPart(ctx context.Context, id uuid.UUID) (*models.Part, error)
	SearchParts(ctx context.Context, query, category string) ([]models.Part, error)
	LowStock(ctx context.Context, threshold int) ([]models.Part, error)
	CreateServiceItem(ctx context.Context, input ServiceItemInput) (*models.ServiceItem, error)
	UpdateServiceItem(ctx context.Context, id uuid.UUID, input ServiceItemInput) (*models.ServiceItem, error)
	DeleteServiceItem(ctx context.Context, id uuid.UUID) error
	ListServiceItems(ctx context.Context) ([]models.ServiceItem, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreatePart(ctx context.Context, input PartInput) (*models.Part, error) {
	if err := validatePart(input); err != nil {
		return nil, err
	}

	part := &models.Part{
		ID:          uuid.New(),
		PartName:    strings.TrimSpace(input.PartName),
		PartNumber:  strings.TrimSpace(input.PartNumber),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		BuyingPrice: input.BuyingPrice,
		Stock:       input.Stock,
	}
	if err := s.repo.CreatePart(ctx, part); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create part")
	}
	return part, nil
}

func (s *service) UpdatePart(ctx context.Context, id uuid.UUID, input PartInput) (*models.Part, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part id required")
	}
	if err := validatePart(input); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"part_name":    strings.TrimSpace(input.PartName),
		"part_number":  strings.TrimSpace(input.PartNumber),
		"category":     strings.TrimSpace(input.Category),
		"price":        input.Price,
		"buying_price": input.BuyingPrice,
		"stock":        input.Stock,
	}
	if err := s.repo.UpdatePart(ctx, id, updates); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update part")
	}
	return s.GetPart(ctx, id)
}

func (s *service) DeletePart(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "part id required")
	}
	if err := s.repo.DeletePart(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete part")
	}
	return nil
}

func (s *service) GetPart(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	part, err := s.repo.FindPart(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load part")
	}
	return part, nil
}

func (s *service) SearchParts(ctx context.Context, query, category string) ([]models.Part, error) {
	parts, err := s.repo.SearchParts(ctx, query, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search parts")
	}
	return parts, nil
}

func (s *service) LowStock(ctx context.Context, threshold int) ([]models.Part, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	parts, err := s.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock")
	}
	return parts, nil
}

func (s *service) CreateServiceItem(ctx context.Context, input ServiceItemInput) (*models.ServiceItem, error) {
	if err := validateServiceItem(input); err != nil {
		return nil, err
	}

	item := &models.ServiceItem{
		ID:   uuid.New(),
		Name: strings.TrimSpace(input.Name),
		Cost: input.Cost,
	}
	if err := s.repo.CreateServiceItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service item")
	}
	return item, nil
}

func (s *service) UpdateServiceItem(ctx context.Context, id uuid.UUID, input ServiceItemInput) (*models.ServiceItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}
	if err := validateServiceItem(input); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name": strings.TrimSpace(input.Name),
		"cost": input.Cost,
	}
	if err := s.repo.UpdateServiceItem(ctx, id, updates); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service item")
	}

	item, err := s.repo.FindServiceItem(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service item")
	}
	return item, nil
}

func (s *service) DeleteServiceItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}
	if err := s.repo.DeleteServiceItem(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete service item")
	}
	return nil
}

func (s *service) ListServiceItems(ctx context.Context) ([]models.ServiceItem, error) {
	items, err := s.repo.ListServiceItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list service items")
	}
	return items, nil
}

func validatePart(input PartInput) error {
	if strings.TrimSpace(input.PartName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "part name required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.BuyingPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "buying price cannot be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	return nil
}

func validateServiceItem(input ServiceItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "service name required")
	}
	if input.Cost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}
	return nil
}
