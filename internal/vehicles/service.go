package vehicles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

// Input carries the editable vehicle fields.
type Input struct {
	VehicleNo     string
	CustomerPhone string
	Model         string
	Year          int
	Engine        string
	Chassis       string
	Notes         string
}

// Lookup is what the POS screen gets when a vehicle number is keyed in:
// the registry entry, the most recent invoice, and the customer details
// to prefill the sale with.
type Lookup struct {
	Vehicle       *models.Vehicle
	LastSale      *models.Sale
	CustomerName  string
	CustomerPhone string
}

// Service maintains the vehicle register and serves POS lookups.
type Service interface {
	Create(ctx context.Context, input Input) (*models.Vehicle, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	Search(ctx context.Context, query string) ([]models.Vehicle, error)
	LookupByNumber(ctx context.Context, vehicleNo string) (*Lookup, error)
	History(ctx context.Context, vehicleNo string, limit int) ([]models.Sale, error)
}

type service struct {
	repo Repository
}

// NewService builds a vehicles service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Vehicle, error) {
	if err := validate(&input); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		ID:            uuid.New(),
		VehicleNo:     input.VehicleNo,
		CustomerPhone: input.CustomerPhone,
		Model:         input.Model,
		Year:          input.Year,
		Engine:        input.Engine,
		Chassis:       input.Chassis,
		Notes:         input.Notes,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vehicle number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
	}
	return vehicle, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Vehicle, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	if err := validate(&input); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		ID:            id,
		VehicleNo:     input.VehicleNo,
		CustomerPhone: input.CustomerPhone,
		Model:         input.Model,
		Year:          input.Year,
		Engine:        input.Engine,
		Chassis:       input.Chassis,
		Notes:         input.Notes,
	}
	if err := s.repo.Update(ctx, vehicle); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vehicle number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vehicle")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	return vehicle, nil
}

func (s *service) Search(ctx context.Context, query string) ([]models.Vehicle, error) {
	vehicles, err := s.repo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search vehicles")
	}
	return vehicles, nil
}

// LookupByNumber tolerates an unregistered vehicle as long as it has sold
// before; the register entry and the invoice trail are independent sources.
func (s *service) LookupByNumber(ctx context.Context, vehicleNo string) (*Lookup, error) {
	vehicleNo = strings.TrimSpace(vehicleNo)
	if vehicleNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle number required")
	}

	lookup := &Lookup{}

	vehicle, err := s.repo.FindByNumber(ctx, vehicleNo)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	lookup.Vehicle = vehicle

	lastSale, err := s.repo.LastSaleByVehicle(ctx, vehicleNo)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load last sale")
	}
	lookup.LastSale = lastSale

	if vehicle == nil && lastSale == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not seen before")
	}

	// Prefer the invoice trail for the name, the register for the phone.
	if lastSale != nil {
		lookup.CustomerName = lastSale.CustomerName
		lookup.CustomerPhone = lastSale.CustomerPhone
	}
	if vehicle != nil && vehicle.CustomerPhone != "" {
		lookup.CustomerPhone = vehicle.CustomerPhone
	}
	return lookup, nil
}

func (s *service) History(ctx context.Context, vehicleNo string, limit int) ([]models.Sale, error) {
	vehicleNo = strings.TrimSpace(vehicleNo)
	if vehicleNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle number required")
	}
	sales, err := s.repo.SalesByVehicle(ctx, vehicleNo, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle sales")
	}
	return sales, nil
}

func validate(input *Input) error {
	input.VehicleNo = strings.ToUpper(strings.TrimSpace(input.VehicleNo))
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	input.Model = strings.TrimSpace(input.Model)
	input.Engine = strings.TrimSpace(input.Engine)
	input.Chassis = strings.TrimSpace(input.Chassis)
	input.Notes = strings.TrimSpace(input.Notes)
	if input.VehicleNo == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vehicle number required")
	}
	return nil
}
