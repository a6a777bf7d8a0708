package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

func setupSettingsTest(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:settings_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestSettingPutGet(t *testing.T) {
	svc := setupSettingsTest(t)
	ctx := context.Background()

	require.NoError(t, svc.Put(ctx, KeyShopName, "Garage Master"))

	value, err := svc.Get(ctx, KeyShopName)
	require.NoError(t, err)
	assert.Equal(t, "Garage Master", value)

	// Put is an upsert.
	require.NoError(t, svc.Put(ctx, KeyShopName, "Garage Master (Pvt) Ltd"))
	value, err = svc.Get(ctx, KeyShopName)
	require.NoError(t, err)
	assert.Equal(t, "Garage Master (Pvt) Ltd", value)
}

func TestSettingNotFound(t *testing.T) {
	svc := setupSettingsTest(t)

	_, err := svc.Get(context.Background(), "missing")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSettingAll(t *testing.T) {
	svc := setupSettingsTest(t)
	ctx := context.Background()

	require.NoError(t, svc.Put(ctx, KeyShopName, "Garage Master"))
	require.NoError(t, svc.Put(ctx, KeyShopPhone, "0112223344"))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "0112223344", all[KeyShopPhone])
}
