package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a checkout repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOpenSessionByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.SessionStatusOpen).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) NextInvoiceNo(ctx context.Context, sessionID uuid.UUID) (int, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE sessions
		SET invoice_counter = invoice_counter + 1
		WHERE id = ? AND status = ?
	`, sessionID, enums.SessionStatusOpen)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var counter int
	err := r.db.WithContext(ctx).
		Raw(`SELECT invoice_counter FROM sessions WHERE id = ?`, sessionID).
		Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}

func (r *repository) FindPart(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// DecrementStock takes qty units off the shelf, but only if they are still
// there. Zero rows affected means another sale got them first.
func (r *repository) DecrementStock(ctx context.Context, partID uuid.UUID, qty int) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE parts
		SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, qty, partID, qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindServiceItem(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error) {
	var item models.ServiceItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *repository) FindUnpaidCreditSales(ctx context.Context, ids []uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("id IN ? AND payment_method = ? AND is_paid = ?", ids, enums.PaymentMethodCredit, false).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// MarkSalesPaid flips is_paid on the referenced sales, guarded so an invoice
// settled twice (two tills, one customer) only counts once.
func (r *repository) MarkSalesPaid(ctx context.Context, ids []uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE sales
		SET is_paid = 1
		WHERE id IN ? AND payment_method = ? AND is_paid = 0
	`, ids, enums.PaymentMethodCredit)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// UpsertVehicle keeps the registry's phone link fresh without clobbering the
// descriptive fields an admin may have filled in.
func (r *repository) UpsertVehicle(ctx context.Context, vehicleNo, customerPhone string) error {
	vehicle := models.Vehicle{
		ID:            uuid.New(),
		VehicleNo:     vehicleNo,
		CustomerPhone: customerPhone,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vehicle_no"}},
			DoUpdates: clause.AssignmentColumns([]string{"customer_phone", "updated_at"}),
		}).
		Create(&vehicle).Error
}
