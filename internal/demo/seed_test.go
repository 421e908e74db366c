package demo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ztacole/BacaDong/internal/entities"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	db, err := gorm.Open(sqlite.Open("file:"+dbPath+"?_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Category{},
		&entities.Member{},
		&entities.Book{},
		&entities.BookHistory{},
		&entities.BookContent{},
	))
	require.NoError(t, db.Create(&entities.Member{Username: "user"}).Error)
	require.NoError(t, db.Create(&entities.Member{Username: "admin"}).Error)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestSeed(t *testing.T) {
	db := setupSeedDB(t)
	ctx := context.Background()

	result, err := Seed(ctx, db)

	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, len(SampleCategories), result.Categories)
	assert.Equal(t, len(sampleBooks()), result.Books)
	assert.Positive(t, result.Chapters)
	assert.Positive(t, result.Views)

	var views int64
	require.NoError(t, db.Model(&entities.BookHistory{}).Count(&views).Error)
	assert.Equal(t, int64(result.Views), views)

	var rated []entities.BookHistory
	require.NoError(t, db.Where("rating IS NOT NULL").Find(&rated).Error)
	pairs := make(map[[2]uint]bool)
	for _, h := range rated {
		key := [2]uint{h.BookID, h.MemberID}
		assert.False(t, pairs[key], "member rated a book twice")
		pairs[key] = true
	}
}

func TestSeed_SkipsPopulatedCatalog(t *testing.T) {
	db := setupSeedDB(t)
	ctx := context.Background()

	_, err := Seed(ctx, db)
	require.NoError(t, err)

	result, err := Seed(ctx, db)

	require.NoError(t, err)
	assert.True(t, result.Skipped)

	var books int64
	require.NoError(t, db.Model(&entities.Book{}).Count(&books).Error)
	assert.Equal(t, int64(len(sampleBooks())), books)
}
