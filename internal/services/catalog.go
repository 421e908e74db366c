package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/database/categories"
	"github.com/ztacole/BacaDong/internal/entities"
)

// PreviewLength is the number of characters shown before a chapter or
// synopsis is cut off.
const PreviewLength = 100

// HomePage is everything the landing page shows.
type HomePage struct {
	Featured   *entities.CatalogBook  `json:"featured"`
	Newest     []entities.CatalogBook `json:"newest"`
	TopRated   []entities.CatalogBook `json:"top_rated"`
	MostViewed []entities.CatalogBook `json:"most_viewed"`
	Excerpt    string                 `json:"excerpt,omitempty"`
}

// Chapter is a chapter with its shortened preview.
type Chapter struct {
	entities.BookContent
	Preview string `json:"preview"`
}

// BookPage is the detail view of one book.
type BookPage struct {
	Book     *entities.CatalogBook `json:"book"`
	Chapters []Chapter             `json:"chapters"`
}

// CategoryPage is one category's listing.
type CategoryPage struct {
	Category string                 `json:"category"`
	Sort     books.SortKey          `json:"sort"`
	Books    []entities.CatalogBook `json:"books"`
}

// CatalogService composes store calls into the pages a reader sees.
type CatalogService struct {
	books       BookCatalog
	categories  CategoryLister
	sectionSize int
	defaultSort books.SortKey
}

// NewCatalogService creates a CatalogService. sectionSize bounds each home
// page section; defaultSort applies when a category page names no sort.
func NewCatalogService(bookCatalog BookCatalog, categories CategoryLister, sectionSize int, defaultSort string) *CatalogService {
	sort := books.SortPopular
	if strings.TrimSpace(defaultSort) != "" {
		sort = books.ParseSortKey(defaultSort)
	}
	return &CatalogService{
		books:       bookCatalog,
		categories:  categories,
		sectionSize: sectionSize,
		defaultSort: sort,
	}
}

// Home loads the featured book and the three home sections.
func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	featured, err := s.books.TopRated(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("featured book: %w", err)
	}

	page := &HomePage{}
	if len(featured) > 0 {
		page.Featured = &featured[0]
		page.Excerpt = Excerpt(featured[0].Synopsis)
	}

	if page.Newest, err = s.books.Newest(ctx, s.sectionSize); err != nil {
		return nil, fmt.Errorf("newest section: %w", err)
	}
	if page.TopRated, err = s.books.TopRated(ctx, s.sectionSize); err != nil {
		return nil, fmt.Errorf("top rated section: %w", err)
	}
	if page.MostViewed, err = s.books.MostViewed(ctx, s.sectionSize); err != nil {
		return nil, fmt.Errorf("most viewed section: %w", err)
	}
	return page, nil
}

// OpenBook loads a book with its chapters and records the member's view.
// Nothing is recorded for a book that does not exist.
func (s *CatalogService) OpenBook(ctx context.Context, bookID, memberID uint) (*BookPage, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	contents, err := s.books.Contents(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := s.books.RecordView(ctx, bookID, memberID); err != nil {
		return nil, err
	}
	book.ViewCount++

	chapters := make([]Chapter, len(contents))
	for i, c := range contents {
		chapters[i] = Chapter{BookContent: c, Preview: Preview(c.Content)}
	}
	return &BookPage{Book: book, Chapters: chapters}, nil
}

// CategoryPage lists a category from a link slug such as "fiksi". The slug
// is matched against the stored names, capitalized form first. A slug that
// matches no category lists nothing. An empty sort uses the configured
// default.
func (s *CatalogService) CategoryPage(ctx context.Context, slug, sort string) (*CategoryPage, error) {
	name, err := s.resolveCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.CategoryBooks(ctx, name, sort)
}

// CategoryBooks lists the category with exactly this stored name.
func (s *CatalogService) CategoryBooks(ctx context.Context, name, sort string) (*CategoryPage, error) {
	key := s.defaultSort
	if strings.TrimSpace(sort) != "" {
		key = books.ParseSortKey(sort)
	}

	list, err := s.books.ByCategory(ctx, name, key)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Category: name, Sort: key, Books: list}, nil
}

func (s *CatalogService) resolveCategory(ctx context.Context, slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	name := CategoryName(slug)
	for _, candidate := range []string{name, slug} {
		category, err := s.categories.GetByName(ctx, candidate)
		if errors.Is(err, categories.ErrCategoryNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("resolve category %q: %w", slug, err)
		}
		return category.Name, nil
	}
	return name, nil
}

// CategoryMenu returns the categories for navigation.
func (s *CatalogService) CategoryMenu(ctx context.Context) ([]entities.Category, error) {
	return s.categories.ListAll(ctx)
}

// IsNotFound reports whether err means the requested book does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, books.ErrBookNotFound)
}

// Preview shortens text to PreviewLength characters followed by "...".
// Shorter text is returned unchanged.
func Preview(text string) string {
	if utf8.RuneCountInString(text) < PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}

// Excerpt shortens a synopsis to PreviewLength characters followed by "...".
// Unlike Preview, text of exactly PreviewLength characters is kept whole.
func Excerpt(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}

// CategoryName upper-cases the first letter of a category slug.
func CategoryName(slug string) string {
	slug = strings.TrimSpace(slug)
	r, size := utf8.DecodeRuneInString(slug)
	if r == utf8.RuneError {
		return slug
	}
	return string(unicode.ToUpper(r)) + slug[size:]
}
