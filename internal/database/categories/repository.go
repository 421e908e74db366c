// Package categories provides database operations for catalog categories.
//
// # Usage
//
//	repo := categories.NewRepository(db)
//	all, err := repo.ListAll(ctx)
//	fiction, err := repo.Add(ctx, "Fiction")
package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/logging"
	"github.com/ztacole/BacaDong/internal/metrics"
)

const storeName = "categories"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryInUse       = errors.New("category still has books")
	ErrInvalidCategoryName = errors.New("category name must not be empty")
)

// Repository handles all category database operations.
type Repository struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, log: logging.Component(storeName)}
}

// ListAll returns every category ordered by name.
func (r *Repository) ListAll(ctx context.Context) (categories []entities.Category, err error) {
	defer metrics.Observe(storeName, "list_all", time.Now(), &err)

	categories = []entities.Category{}
	if err = r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		r.log.Error().Err(err).Msg("list categories failed")
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (category *entities.Category, err error) {
	defer metrics.Observe(storeName, "get_by_id", time.Now(), &err)

	var c entities.Category
	err = r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Uint("id", id).Msg("get category failed")
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &c, nil
}

// GetByName retrieves a category by its exact name.
func (r *Repository) GetByName(ctx context.Context, name string) (category *entities.Category, err error) {
	defer metrics.Observe(storeName, "get_by_name", time.Now(), &err)

	var c entities.Category
	err = r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Str("name", name).Msg("get category by name failed")
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return &c, nil
}

// Add creates a category and returns it with its generated ID.
func (r *Repository) Add(ctx context.Context, name string) (category *entities.Category, err error) {
	defer metrics.Observe(storeName, "add", time.Now(), &err)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCategoryName
	}

	c := &entities.Category{Name: name}
	if err = r.db.WithContext(ctx).Create(c).Error; err != nil {
		if r.isDuplicate(ctx, err, name) {
			return nil, ErrCategoryExists
		}
		r.log.Error().Err(err).Str("name", name).Msg("add category failed")
		return nil, fmt.Errorf("add category %q: %w", name, err)
	}
	return c, nil
}

// Update renames a category.
func (r *Repository) Update(ctx context.Context, id uint, newName string) (err error) {
	defer metrics.Observe(storeName, "update", time.Now(), &err)

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidCategoryName
	}

	result := r.db.WithContext(ctx).Model(&entities.Category{}).Where("id = ?", id).Update("name", newName)
	if result.Error != nil {
		if r.isDuplicate(ctx, result.Error, newName) {
			return ErrCategoryExists
		}
		r.log.Error().Err(result.Error).Uint("id", id).Msg("update category failed")
		return fmt.Errorf("update category %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category. Categories that still own books are kept.
func (r *Repository) Delete(ctx context.Context, id uint) (err error) {
	defer metrics.Observe(storeName, "delete", time.Now(), &err)

	var books int64
	if err = r.db.WithContext(ctx).Model(&entities.Book{}).Where("category_id = ?", id).Count(&books).Error; err != nil {
		r.log.Error().Err(err).Uint("id", id).Msg("count category books failed")
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if books > 0 {
		return ErrCategoryInUse
	}

	result := r.db.WithContext(ctx).Delete(&entities.Category{}, id)
	if result.Error != nil {
		r.log.Error().Err(result.Error).Uint("id", id).Msg("delete category failed")
		return fmt.Errorf("delete category %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// isDuplicate reports whether a failed write hit the unique name index.
// Drivers without error translation are checked with a lookup.
func (r *Repository) isDuplicate(ctx context.Context, err error, name string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var count int64
	if r.db.WithContext(ctx).Model(&entities.Category{}).Where("name = ?", name).Count(&count).Error != nil {
		return false
	}
	return count > 0
}
