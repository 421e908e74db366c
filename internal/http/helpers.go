package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/database/categories"
	"github.com/ztacole/BacaDong/internal/database/members"
	"github.com/ztacole/BacaDong/internal/logging"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// ListResponse wraps a list of books or categories with its size.
type ListResponse struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message, Code: "conflict"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log := logging.Component("http")
	log.Error().Err(err).Str("context", context).Msg("Internal error")
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
}

// respondStoreError maps store sentinel errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, books.ErrBookNotFound):
		respondNotFound(c, "book")
	case errors.Is(err, categories.ErrCategoryNotFound):
		respondNotFound(c, "category")
	case errors.Is(err, members.ErrMemberNotFound):
		respondNotFound(c, "member")
	case errors.Is(err, books.ErrInvalidLimit),
		errors.Is(err, books.ErrInvalidRating),
		errors.Is(err, categories.ErrInvalidCategoryName):
		respondBadRequest(c, err.Error())
	case errors.Is(err, categories.ErrCategoryExists),
		errors.Is(err, categories.ErrCategoryInUse):
		respondConflict(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondList sends a 200 OK response wrapping data and its length.
func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, ListResponse{Data: data, Count: count})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseLimit reads the limit query parameter, falling back to def when it is
// absent. Range checks are left to the store.
func parseLimit(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "invalid limit")
		return 0, false
	}
	return limit, true
}
