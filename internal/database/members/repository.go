// Package members provides lookups for the readers recorded in book_history.
//
// # Usage
//
//	repo := members.NewRepository(db)
//	member, err := repo.GetByID(ctx, 1)
package members

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/metrics"
)

const storeName = "members"

var ErrMemberNotFound = errors.New("member not found")

// Repository handles member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a member by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (member *entities.Member, err error) {
	defer metrics.Observe(storeName, "get_by_id", time.Now(), &err)

	var m entities.Member
	err = r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	return &m, nil
}

// ListAll returns every member ordered by ID.
func (r *Repository) ListAll(ctx context.Context) (members []entities.Member, err error) {
	defer metrics.Observe(storeName, "list_all", time.Now(), &err)

	members = []entities.Member{}
	if err = r.db.WithContext(ctx).Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
