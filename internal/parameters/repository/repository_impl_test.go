package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&paramdomain.FiscalParameter{}))
	return db
}

func TestListByYearFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Create([]paramdomain.FiscalParameter{
		{FiscalYear: 2025, Key: "tax.social_levy_property", Value: 0.18},
		{FiscalYear: 2025, Key: "corporate.reduced_rate", Value: 0.16, Metadata: datatypes.JSONMap{"source": "finance act"}},
		{FiscalYear: 2024, Key: "tax.social_levy_property", Value: 0.172},
	}).Error)

	items, err := NewRepository(db).ListByYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "corporate.reduced_rate", items[0].Key)
	require.Equal(t, "finance act", items[0].Metadata["source"])
	require.Equal(t, "tax.social_levy_property", items[1].Key)
	require.Equal(t, 0.18, items[1].Value)
}

func TestListByYearEmpty(t *testing.T) {
	items, err := NewRepository(newTestDB(t)).ListByYear(context.Background(), 2030)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestUniqueKeyPerYear(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&paramdomain.FiscalParameter{FiscalYear: 2026, Key: "deficit.global_income_cap", Value: 10700}).Error)
	err := db.Create(&paramdomain.FiscalParameter{FiscalYear: 2026, Key: "deficit.global_income_cap", Value: 21400}).Error
	require.Error(t, err)
}
