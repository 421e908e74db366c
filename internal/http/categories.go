package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoriesController struct {
	store   CategoryStore
	catalog CatalogPages
}

func NewCategoriesController(store CategoryStore, catalog CatalogPages) *CategoriesController {
	return &CategoriesController{store: store, catalog: catalog}
}

// CategoryRequest is the body of category create and rename calls.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (controller *CategoriesController) List(c *gin.Context) {
	categories, err := controller.store.ListAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list categories")
		return
	}
	respondList(c, categories, len(categories))
}

func (controller *CategoriesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := controller.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (controller *CategoriesController) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}
	category, err := controller.store.Add(c.Request.Context(), req.Name)
	if err != nil {
		respondStoreError(c, err, "add category")
		return
	}
	respondCreated(c, category)
}

func (controller *CategoriesController) Rename(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	ctx := c.Request.Context()
	if err := controller.store.Update(ctx, id, req.Name); err != nil {
		respondStoreError(c, err, "rename category")
		return
	}
	category, err := controller.store.GetByID(ctx, id)
	if err != nil {
		respondStoreError(c, err, "get renamed category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (controller *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := controller.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// Books lists the books of a category by id.
func (controller *CategoriesController) Books(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	category, err := controller.store.GetByID(ctx, id)
	if err != nil {
		respondStoreError(c, err, "get category")
		return
	}
	page, err := controller.catalog.CategoryBooks(ctx, category.Name, c.Query("sort"))
	if err != nil {
		respondStoreError(c, err, "category books")
		return
	}
	c.JSON(http.StatusOK, page)
}
