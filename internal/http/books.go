package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type BooksController struct {
	store        BookStore
	defaultLimit int
}

func NewBooksController(store BookStore, defaultLimit int) *BooksController {
	return &BooksController{
		store:        store,
		defaultLimit: defaultLimit,
	}
}

// RatingRequest is the body of PUT /api/books/:id/rating.
type RatingRequest struct {
	Rating *int `json:"rating" binding:"required"`
}

// RatingResponse echoes the member's stored rating with the refreshed book.
type RatingResponse struct {
	Rating int `json:"rating"`
	Book   any `json:"book"`
}

func (controller *BooksController) Newest(c *gin.Context) {
	limit, ok := parseLimit(c, controller.defaultLimit)
	if !ok {
		return
	}
	books, err := controller.store.Newest(c.Request.Context(), limit)
	if err != nil {
		respondStoreError(c, err, "newest books")
		return
	}
	respondList(c, books, len(books))
}

func (controller *BooksController) TopRated(c *gin.Context) {
	limit, ok := parseLimit(c, controller.defaultLimit)
	if !ok {
		return
	}
	books, err := controller.store.TopRated(c.Request.Context(), limit)
	if err != nil {
		respondStoreError(c, err, "top rated books")
		return
	}
	respondList(c, books, len(books))
}

func (controller *BooksController) MostViewed(c *gin.Context) {
	limit, ok := parseLimit(c, controller.defaultLimit)
	if !ok {
		return
	}
	books, err := controller.store.MostViewed(c.Request.Context(), limit)
	if err != nil {
		respondStoreError(c, err, "most viewed books")
		return
	}
	respondList(c, books, len(books))
}

func (controller *BooksController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}
	limit, ok := parseLimit(c, controller.defaultLimit)
	if !ok {
		return
	}
	books, err := controller.store.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondStoreError(c, err, "search books")
		return
	}
	respondList(c, books, len(books))
}

func (controller *BooksController) Stats(c *gin.Context) {
	stats, err := controller.store.Stats(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "catalog stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) Contents(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !controller.requireBook(c, id) {
		return
	}
	contents, err := controller.store.Contents(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "book contents")
		return
	}
	respondList(c, contents, len(contents))
}

// RecordView stores one view by the acting member without loading the page.
func (controller *BooksController) RecordView(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !controller.requireBook(c, id) {
		return
	}
	if err := controller.store.RecordView(c.Request.Context(), id, memberID(c)); err != nil {
		respondStoreError(c, err, "record view")
		return
	}
	c.Status(http.StatusNoContent)
}

func (controller *BooksController) Rate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "rating is required")
		return
	}
	if !controller.requireBook(c, id) {
		return
	}

	ctx := c.Request.Context()
	member := memberID(c)
	if err := controller.store.RateBook(ctx, id, member, *req.Rating); err != nil {
		respondStoreError(c, err, "rate book")
		return
	}

	book, err := controller.store.GetByID(ctx, id)
	if err != nil {
		respondStoreError(c, err, "get rated book")
		return
	}
	c.JSON(http.StatusOK, RatingResponse{Rating: *req.Rating, Book: book})
}

func (controller *BooksController) MemberRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !controller.requireBook(c, id) {
		return
	}
	rating, err := controller.store.MemberRating(c.Request.Context(), id, memberID(c))
	if err != nil {
		respondStoreError(c, err, "member rating")
		return
	}
	c.JSON(http.StatusOK, gin.H{"member_id": memberID(c), "rating": rating})
}

// requireBook responds 404 and returns false when the book does not exist.
func (controller *BooksController) requireBook(c *gin.Context, id uint) bool {
	exists, err := controller.store.Exists(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "check book")
		return false
	}
	if !exists {
		respondNotFound(c, "book")
		return false
	}
	return true
}
