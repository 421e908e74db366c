// Package books provides the catalog queries over books, their categories and
// their view history.
//
// Ratings and view counts are never stored on the book: every read
// aggregates book_history with a LEFT JOIN, so books without history still
// appear with a nil AverageRating and a zero ViewCount.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	newest, err := repo.Newest(ctx, 5)
//	fiction, err := repo.ByCategory(ctx, "Fiction", books.ParseSortKey("rating"))
//	err = repo.RecordView(ctx, bookID, memberID)
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/logging"
	"github.com/ztacole/BacaDong/internal/metrics"
)

const storeName = "books"

const (
	MinRating = 0
	MaxRating = 5
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrInvalidRating = fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
)

const catalogColumns = `b.id, b.title, b.author, b.publisher, b.synopsis, b.image_cover,
	b.publish_date, b.category_id, c.name AS category_name,
	AVG(bh.rating) AS average_rating, COUNT(bh.id) AS view_count`

// Repository handles the catalog read queries and view recording.
type Repository struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, log: logging.Component(storeName)}
}

// catalogQuery joins every book with its category and history aggregates.
func (r *Repository) catalogQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("books AS b").
		Select(catalogColumns).
		Joins("JOIN categories c ON c.id = b.category_id").
		Joins("LEFT JOIN book_history bh ON bh.book_id = b.id").
		Group("b.id, c.name")
}

func (r *Repository) list(ctx context.Context, operation string, build func(*gorm.DB) *gorm.DB) (books []entities.CatalogBook, err error) {
	defer metrics.Observe(storeName, operation, time.Now(), &err)

	books = []entities.CatalogBook{}
	if err = build(r.catalogQuery(ctx)).Scan(&books).Error; err != nil {
		r.log.Error().Err(err).Str("operation", operation).Msg("catalog query failed")
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return books, nil
}

// Newest returns up to limit books, most recently published first.
func (r *Repository) Newest(ctx context.Context, limit int) ([]entities.CatalogBook, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return r.list(ctx, "newest", func(q *gorm.DB) *gorm.DB {
		return q.Order(orderNewest).Limit(limit)
	})
}

// TopRated returns up to limit books by average rating. Unrated books sort
// after every rated one.
func (r *Repository) TopRated(ctx context.Context, limit int) ([]entities.CatalogBook, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return r.list(ctx, "top_rated", func(q *gorm.DB) *gorm.DB {
		return q.Order(orderTopRated).Limit(limit)
	})
}

// MostViewed returns up to limit books by number of view events.
func (r *Repository) MostViewed(ctx context.Context, limit int) ([]entities.CatalogBook, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return r.list(ctx, "most_viewed", func(q *gorm.DB) *gorm.DB {
		return q.Order(orderMostViewed).Limit(limit)
	})
}

// ByCategory returns every book of the named category in the given order.
// An unknown category yields an empty list.
func (r *Repository) ByCategory(ctx context.Context, categoryName string, sort SortKey) ([]entities.CatalogBook, error) {
	return r.list(ctx, "by_category", func(q *gorm.DB) *gorm.DB {
		return q.Where("c.name = ?", categoryName).Order(sort.orderClause())
	})
}

// Search matches title or author case-insensitively.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]entities.CatalogBook, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	pattern := "%" + strings.TrimSpace(query) + "%"
	return r.list(ctx, "search", func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(b.title) LIKE LOWER(?) OR LOWER(b.author) LIKE LOWER(?)", pattern, pattern).
			Order(orderTitle).
			Limit(limit)
	})
}

// GetByID returns one book with its aggregates.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.CatalogBook, error) {
	books, err := r.list(ctx, "get_by_id", func(q *gorm.DB) *gorm.DB {
		return q.Where("b.id = ?", id)
	})
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrBookNotFound
	}
	return &books[0], nil
}

// Exists reports whether a book with the given id is in the catalog.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check book %d: %w", id, err)
	}
	return count > 0, nil
}

// RecordView stores one view event. Repeated views by the same member are
// all kept and all count.
func (r *Repository) RecordView(ctx context.Context, bookID, memberID uint) (err error) {
	defer metrics.Observe(storeName, "record_view", time.Now(), &err)

	event := &entities.BookHistory{BookID: bookID, MemberID: memberID}
	if err = r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.log.Error().Err(err).Uint("book_id", bookID).Uint("member_id", memberID).Msg("record view failed")
		return fmt.Errorf("record view of book %d by member %d: %w", bookID, memberID, err)
	}
	metrics.ViewsRecorded.Inc()
	return nil
}

// RateBook sets the member's rating for a book. A member holds at most one
// rating per book: earlier ratings are cleared and the rating moves to the
// member's latest view. A member who never opened the book gets a rated
// view event.
func (r *Repository) RateBook(ctx context.Context, bookID, memberID uint, rating int) (err error) {
	defer metrics.Observe(storeName, "rate_book", time.Now(), &err)

	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The member row serializes concurrent rates by the same member, even
		// when the pair has no history rows yet to lock.
		var member entities.Member
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").Where("id = ?", memberID).Limit(1).
			Find(&member).Error
		if err != nil {
			return err
		}

		err = tx.Model(&entities.BookHistory{}).
			Where("book_id = ? AND member_id = ? AND rating IS NOT NULL", bookID, memberID).
			Update("rating", nil).Error
		if err != nil {
			return err
		}

		var latest entities.BookHistory
		err = tx.Where("book_id = ? AND member_id = ?", bookID, memberID).
			Order("viewed_at DESC, id DESC").
			First(&latest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&entities.BookHistory{BookID: bookID, MemberID: memberID, Rating: &rating}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&latest).Update("rating", rating).Error
	})
	if err != nil {
		r.log.Error().Err(err).Uint("book_id", bookID).Uint("member_id", memberID).Msg("rate book failed")
		return fmt.Errorf("rate book %d by member %d: %w", bookID, memberID, err)
	}
	metrics.RatingsRecorded.Inc()
	return nil
}

// MemberRating returns the member's current rating of a book, or nil.
func (r *Repository) MemberRating(ctx context.Context, bookID, memberID uint) (*int, error) {
	var event entities.BookHistory
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND member_id = ? AND rating IS NOT NULL", bookID, memberID).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("member rating: %w", err)
	}
	return event.Rating, nil
}

// Contents returns the chapters of a book in reading order.
func (r *Repository) Contents(ctx context.Context, bookID uint) (contents []entities.BookContent, err error) {
	defer metrics.Observe(storeName, "contents", time.Now(), &err)

	contents = []entities.BookContent{}
	err = r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("position ASC, id ASC").
		Find(&contents).Error
	if err != nil {
		r.log.Error().Err(err).Uint("book_id", bookID).Msg("load contents failed")
		return nil, fmt.Errorf("contents of book %d: %w", bookID, err)
	}
	return contents, nil
}

// Stats returns catalog totals.
func (r *Repository) Stats(ctx context.Context) (stats entities.CatalogStats, err error) {
	defer metrics.Observe(storeName, "stats", time.Now(), &err)

	db := r.db.WithContext(ctx)
	counts := []struct {
		model any
		dst   *int64
	}{
		{&entities.Book{}, &stats.Books},
		{&entities.Category{}, &stats.Categories},
		{&entities.Member{}, &stats.Members},
		{&entities.BookHistory{}, &stats.Views},
	}
	for _, c := range counts {
		if err = db.Model(c.model).Count(c.dst).Error; err != nil {
			r.log.Error().Err(err).Msg("catalog stats failed")
			return entities.CatalogStats{}, fmt.Errorf("catalog stats: %w", err)
		}
	}
	return stats, nil
}
