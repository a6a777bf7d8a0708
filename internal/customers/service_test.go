package customers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

func setupCustomersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:customers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Sale{}, &models.SaleLine{}))
	return db
}

func seedCreditSale(t *testing.T, db *gorm.DB, phone, vehicleNo string, total int64, paid bool) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		ID:            uuid.New(),
		InvoiceNo:     int(time.Now().UnixNano() % 100000),
		SessionID:     uuid.New(),
		UserID:        uuid.New(),
		VehicleNo:     vehicleNo,
		CustomerName:  "Test",
		CustomerPhone: phone,
		Subtotal:      decimal.NewFromInt(total),
		Discount:      decimal.Zero,
		Total:         decimal.NewFromInt(total),
		CashReceived:  decimal.Zero,
		Balance:       decimal.NewFromInt(total),
		Profit:        decimal.NewFromInt(total / 2),
		PaymentMethod: enums.PaymentMethodCredit,
		IsPaid:        paid,
		SoldAt:        time.Now(),
	}
	require.NoError(t, db.Create(sale).Error)
	return sale
}

func TestProfile(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Customer{
		ID:     uuid.New(),
		Name:   "Nimal",
		Phone:  "0771234567",
		Points: 40,
	}).Error)
	seedCreditSale(t, db, "0771234567", "CAB-1234", 3000, false)
	seedCreditSale(t, db, "0771234567", "CAB-1234", 2000, true)

	profile, err := svc.Profile(ctx, "0771234567")
	require.NoError(t, err)
	assert.Equal(t, 40, profile.Customer.Points)
	assert.Len(t, profile.Sales, 2)
	require.Len(t, profile.Outstanding, 1)
	assert.True(t, profile.OwedTotal.Equal(decimal.NewFromInt(3000)))
}

func TestProfileNotFound(t *testing.T) {
	svc, _ := NewService(NewRepository(setupCustomersTestDB(t)))

	_, err := svc.Profile(context.Background(), "0000000000")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestOutstandingByVehicle(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc, _ := NewService(NewRepository(db))

	seedCreditSale(t, db, "0771111111", "KD-5555", 4000, false)
	seedCreditSale(t, db, "0771111111", "KD-5555", 1000, false)
	seedCreditSale(t, db, "0772222222", "AB-1000", 9000, false)

	outstanding, err := svc.OutstandingByVehicle(context.Background(), "KD-5555")
	require.NoError(t, err)
	assert.Len(t, outstanding.Sales, 2)
	assert.True(t, outstanding.Total.Equal(decimal.NewFromInt(5000)))
}

func TestMarkPaid(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc, _ := NewService(NewRepository(db))
	ctx := context.Background()

	sale := seedCreditSale(t, db, "0773333333", "GH-2020", 2500, false)

	require.NoError(t, svc.MarkPaid(ctx, sale.ID))

	var reloaded models.Sale
	require.NoError(t, db.Where("id = ?", sale.ID).First(&reloaded).Error)
	assert.True(t, reloaded.IsPaid)

	// Second settle is a conflict.
	err := svc.MarkPaid(ctx, sale.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}
