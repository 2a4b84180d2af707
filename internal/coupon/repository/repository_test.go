package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	"github.com/muscleuplabs/muscleup/internal/coupon/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&coupondomain.Coupon{}))
	return db
}

func seedCoupon(t *testing.T, db *gorm.DB) coupondomain.Coupon {
	t.Helper()
	now := time.Now().UTC()
	c := coupondomain.Coupon{
		ID:            snowflake.ID(55),
		Code:          "PROMO10",
		DiscountType:  coupondomain.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		CurrentUses:   1,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestFindByCodeIsCaseInsensitive(t *testing.T) {
	db := openDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	seedCoupon(t, db)

	got, err := repo.FindByCode(ctx, "  promo10 ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "PROMO10", got.Code)

	miss, err := repo.FindByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, miss)

	empty, err := repo.FindByCode(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestIncrementUsage(t *testing.T) {
	db := openDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()
	c := seedCoupon(t, db)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.IncrementUsage(ctx, c.ID, snowflake.ID(7), now))
	require.NoError(t, repo.IncrementUsage(ctx, c.ID, snowflake.ID(7), now))

	got, err := repo.FindByCode(ctx, c.Code)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.CurrentUses)
	require.NotNil(t, got.LastUsedAt)
	assert.Equal(t, snowflake.ID(7), got.UpdatedBy)
}
