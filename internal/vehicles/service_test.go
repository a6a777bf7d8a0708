package vehicles

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

func setupVehiclesTest(t *testing.T) (*gorm.DB, Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:vehicles_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vehicle{}, &models.Sale{}, &models.SaleLine{}))

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return db, svc
}

func seedVehicleSale(t *testing.T, db *gorm.DB, vehicleNo, name, phone string, soldAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Sale{
		ID:            uuid.New(),
		InvoiceNo:     int(soldAt.UnixNano() % 100000),
		SessionID:     uuid.New(),
		UserID:        uuid.New(),
		VehicleNo:     vehicleNo,
		CustomerName:  name,
		CustomerPhone: phone,
		Subtotal:      decimal.NewFromInt(1000),
		Total:         decimal.NewFromInt(1000),
		CashReceived:  decimal.NewFromInt(1000),
		Profit:        decimal.NewFromInt(200),
		PaymentMethod: enums.PaymentMethodCash,
		IsPaid:        true,
		SoldAt:        soldAt,
	}).Error)
}

func TestVehicleLifecycle(t *testing.T) {
	_, svc := setupVehiclesTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{
		VehicleNo:     "cab-1234",
		CustomerPhone: "0771234567",
		Model:         "Toyota Axio",
		Year:          2017,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAB-1234", created.VehicleNo)

	updated, err := svc.Update(ctx, created.ID, Input{
		VehicleNo:     "CAB-1234",
		CustomerPhone: "0779999999",
		Model:         "Toyota Axio",
		Year:          2017,
		Notes:         "prefers synthetic oil",
	})
	require.NoError(t, err)
	assert.Equal(t, "0779999999", updated.CustomerPhone)

	results, err := svc.Search(ctx, "CAB")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestVehicleDuplicateNumber(t *testing.T) {
	_, svc := setupVehiclesTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{VehicleNo: "KD-5555"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Input{VehicleNo: "kd-5555"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestLookupPrefersRegisterPhoneAndLatestSaleName(t *testing.T) {
	db, svc := setupVehiclesTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{VehicleNo: "GH-2020", CustomerPhone: "0711111111"})
	require.NoError(t, err)
	seedVehicleSale(t, db, "GH-2020", "Kamal", "0722222222", time.Now().Add(-24*time.Hour))
	seedVehicleSale(t, db, "GH-2020", "Nimal", "0733333333", time.Now())

	lookup, err := svc.LookupByNumber(ctx, "GH-2020")
	require.NoError(t, err)
	require.NotNil(t, lookup.Vehicle)
	require.NotNil(t, lookup.LastSale)
	assert.Equal(t, "Nimal", lookup.CustomerName)
	assert.Equal(t, "0711111111", lookup.CustomerPhone)
}

func TestLookupUnregisteredVehicleWithHistory(t *testing.T) {
	db, svc := setupVehiclesTest(t)

	seedVehicleSale(t, db, "AB-1000", "Sunil", "0744444444", time.Now())

	lookup, err := svc.LookupByNumber(context.Background(), "AB-1000")
	require.NoError(t, err)
	assert.Nil(t, lookup.Vehicle)
	assert.Equal(t, "Sunil", lookup.CustomerName)
	assert.Equal(t, "0744444444", lookup.CustomerPhone)
}

func TestLookupUnknownVehicle(t *testing.T) {
	_, svc := setupVehiclesTest(t)

	_, err := svc.LookupByNumber(context.Background(), "ZZ-0000")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestVehicleHistoryOrdering(t *testing.T) {
	db, svc := setupVehiclesTest(t)

	seedVehicleSale(t, db, "KD-5555", "Kamal", "0755555555", time.Now().Add(-2*time.Hour))
	seedVehicleSale(t, db, "KD-5555", "Kamal", "0755555555", time.Now())

	sales, err := svc.History(context.Background(), "KD-5555", 10)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.True(t, sales[0].SoldAt.After(sales[1].SoldAt))
}
