package http

import (
	"context"

	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/services"
)

// This file collects the store interfaces the controllers depend on.
// books.Repository, categories.Repository, members.Repository and
// services.CatalogService satisfy them; see internal/interfaces.

// BookStore is the catalog surface used by BooksController.
type BookStore interface {
	Newest(ctx context.Context, limit int) ([]entities.CatalogBook, error)
	TopRated(ctx context.Context, limit int) ([]entities.CatalogBook, error)
	MostViewed(ctx context.Context, limit int) ([]entities.CatalogBook, error)
	Search(ctx context.Context, query string, limit int) ([]entities.CatalogBook, error)
	GetByID(ctx context.Context, id uint) (*entities.CatalogBook, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Contents(ctx context.Context, bookID uint) ([]entities.BookContent, error)
	RecordView(ctx context.Context, bookID, memberID uint) error
	RateBook(ctx context.Context, bookID, memberID uint, rating int) error
	MemberRating(ctx context.Context, bookID, memberID uint) (*int, error)
	Stats(ctx context.Context) (entities.CatalogStats, error)
}

// CategoryStore is the category CRUD surface.
type CategoryStore interface {
	ListAll(ctx context.Context) ([]entities.Category, error)
	GetByID(ctx context.Context, id uint) (*entities.Category, error)
	Add(ctx context.Context, name string) (*entities.Category, error)
	Update(ctx context.Context, id uint, newName string) error
	Delete(ctx context.Context, id uint) error
}

// MemberGetter resolves the member a request acts for.
type MemberGetter interface {
	GetByID(ctx context.Context, id uint) (*entities.Member, error)
}

// CatalogPages composes the reader-facing pages.
type CatalogPages interface {
	Home(ctx context.Context) (*services.HomePage, error)
	OpenBook(ctx context.Context, bookID, memberID uint) (*services.BookPage, error)
	CategoryPage(ctx context.Context, slug, sort string) (*services.CategoryPage, error)
	CategoryBooks(ctx context.Context, name, sort string) (*services.CategoryPage, error)
	CategoryMenu(ctx context.Context) ([]entities.Category, error)
}
