package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CatalogController serves the reader pages: home, book detail and
// category listings.
type CatalogController struct {
	catalog CatalogPages
}

func NewCatalogController(catalog CatalogPages) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func (controller *CatalogController) Home(c *gin.Context) {
	page, err := controller.catalog.Home(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "home page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// OpenBook returns the book page and counts the visit as a view.
func (controller *CatalogController) OpenBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, err := controller.catalog.OpenBook(c.Request.Context(), id, memberID(c))
	if err != nil {
		respondStoreError(c, err, "open book")
		return
	}
	c.JSON(http.StatusOK, page)
}

// ByCategory lists a category by name, e.g. /api/books/by-category?name=fiksi&sort=rating.
func (controller *CatalogController) ByCategory(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		respondBadRequest(c, "name query parameter is required")
		return
	}
	page, err := controller.catalog.CategoryPage(c.Request.Context(), name, c.Query("sort"))
	if err != nil {
		respondStoreError(c, err, "category page")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (controller *CatalogController) Menu(c *gin.Context) {
	categories, err := controller.catalog.CategoryMenu(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "category menu")
		return
	}
	respondList(c, categories, len(categories))
}
