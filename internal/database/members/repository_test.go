package members

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

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "members.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Member{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.Create(&entities.Member{Username: "user", DisplayName: "Ursula User"}).Error)
	require.NoError(t, db.Create(&entities.Member{Username: "admin", DisplayName: "Alice Administrator"}).Error)

	return NewRepository(db)
}

func TestRepository_GetByID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	member, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "user", member.Username)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRepository_ListAll(t *testing.T) {
	repo := setupTestDB(t)

	members, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "admin", members[1].Username)
}
