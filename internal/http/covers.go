package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ztacole/BacaDong/internal/covers"
	"github.com/ztacole/BacaDong/internal/logging"
)

// CoverResolver turns a book's image_cover into a local file.
type CoverResolver interface {
	Resolve(ctx context.Context, bookID uint, cover *string) (string, error)
}

type CoversController struct {
	books  BookStore
	covers CoverResolver
}

func NewCoversController(books BookStore, resolver CoverResolver) *CoversController {
	return &CoversController{books: books, covers: resolver}
}

// Cover serves GET /api/books/:id/cover.
func (controller *CoversController) Cover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "book cover")
		return
	}

	path, err := controller.covers.Resolve(c.Request.Context(), id, book.ImageCover)
	if errors.Is(err, covers.ErrNoCover) {
		respondNotFound(c, "cover")
		return
	}
	if err != nil {
		log := logging.Component("http")
		log.Warn().Err(err).Uint("book_id", id).Msg("cover unavailable")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "cover could not be fetched", Code: "bad_gateway"})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}
