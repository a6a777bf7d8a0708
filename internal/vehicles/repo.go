package vehicles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vehicles repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *repository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	res := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", vehicle.ID).
		Updates(map[string]any{
			"vehicle_no":     vehicle.VehicleNo,
			"customer_phone": vehicle.CustomerPhone,
			"model":          vehicle.Model,
			"year":           vehicle.Year,
			"engine":         vehicle.Engine,
			"chassis":        vehicle.Chassis,
			"notes":          vehicle.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Vehicle{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) FindByNumber(ctx context.Context, vehicleNo string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).Where("vehicle_no = ?", vehicleNo).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) Search(ctx context.Context, query string) ([]models.Vehicle, error) {
	like := "%" + query + "%"
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("vehicle_no LIKE ? OR customer_phone LIKE ? OR model LIKE ?", like, like, like).
		Order("vehicle_no ASC").
		Limit(50).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *repository) LastSaleByVehicle(ctx context.Context, vehicleNo string) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Where("vehicle_no = ?", vehicleNo).
		Order("sold_at DESC").
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) SalesByVehicle(ctx context.Context, vehicleNo string, limit int) ([]models.Sale, error) {
	q := r.db.WithContext(ctx).
		Preload("Lines").
		Where("vehicle_no = ?", vehicleNo).
		Order("sold_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var sales []models.Sale
	if err := q.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
