package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Search(ctx context.Context, query string) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR phone LIKE ? OR vehicle_no LIKE ?", like, like, like)
	}
	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) SalesByPhone(ctx context.Context, phone string) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_phone = ?", phone).
		Order("sold_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repository) OutstandingByPhone(ctx context.Context, phone string) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("customer_phone = ? AND payment_method = ? AND is_paid = ?", phone, enums.PaymentMethodCredit, false).
		Order("sold_at ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repository) OutstandingByVehicle(ctx context.Context, vehicleNo string) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("vehicle_no = ? AND payment_method = ? AND is_paid = ?", vehicleNo, enums.PaymentMethodCredit, false).
		Order("sold_at ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// MarkSalePaid settles one credit invoice out of band (cash handed over at
// the counter without a new bill). Guarded the same way as checkout
// settlement so it cannot double-settle.
func (r *repository) MarkSalePaid(ctx context.Context, saleID uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE sales
		SET is_paid = 1
		WHERE id = ? AND payment_method = ? AND is_paid = 0
	`, saleID, enums.PaymentMethodCredit)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
