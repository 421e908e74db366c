package services

import (
	"context"

	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/entities"
)

// BookCatalog provides the catalog queries the service composes.
type BookCatalog interface {
	Newest(ctx context.Context, limit int) ([]entities.CatalogBook, error)
	TopRated(ctx context.Context, limit int) ([]entities.CatalogBook, error)
	MostViewed(ctx context.Context, limit int) ([]entities.CatalogBook, error)
	ByCategory(ctx context.Context, categoryName string, sort books.SortKey) ([]entities.CatalogBook, error)
	GetByID(ctx context.Context, id uint) (*entities.CatalogBook, error)
	Contents(ctx context.Context, bookID uint) ([]entities.BookContent, error)
	RecordView(ctx context.Context, bookID, memberID uint) error
}

// CategoryLister provides the category list for navigation and resolves
// category names.
type CategoryLister interface {
	ListAll(ctx context.Context) ([]entities.Category, error)
	GetByName(ctx context.Context, name string) (*entities.Category, error)
}
