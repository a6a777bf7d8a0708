package grn

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a GRN repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *repository) FindPart(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// ReceiveStock adds the delivered quantity and rewrites the buying price to
// the latest unit cost.
func (r *repository) ReceiveStock(ctx context.Context, partID uuid.UUID, qty int, unitCost decimal.Decimal) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE parts
		SET stock = stock + ?, buying_price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, unitCost, partID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateGRN(ctx context.Context, grn *models.GRN) error {
	return r.db.WithContext(ctx).Create(grn).Error
}

func (r *repository) FindGRN(ctx context.Context, id uuid.UUID) (*models.GRN, error) {
	var grn models.GRN
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ?", id).
		First(&grn).Error
	if err != nil {
		return nil, err
	}
	return &grn, nil
}

func (r *repository) ListGRNs(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.GRN, error) {
	q := r.db.WithContext(ctx).Preload("Lines").Order("received_at DESC")
	if supplierID != uuid.Nil {
		q = q.Where("supplier_id = ?", supplierID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var grns []models.GRN
	if err := q.Find(&grns).Error; err != nil {
		return nil, err
	}
	return grns, nil
}

func (r *repository) UnpaidGRNsOldestFirst(ctx context.Context, supplierID uuid.UUID) ([]models.GRN, error) {
	var grns []models.GRN
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND paid_amount < total", supplierID).
		Order("received_at ASC").
		Find(&grns).Error
	if err != nil {
		return nil, err
	}
	return grns, nil
}

func (r *repository) AddGRNPayment(ctx context.Context, grnID uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE grns
		SET paid_amount = paid_amount + ?
		WHERE id = ?
	`, amount, grnID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.SupplierPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) PaymentsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierPayment, error) {
	var payments []models.SupplierPayment
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("paid_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
