package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ztacole/BacaDong/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(logging.GinMiddleware())
	router.Use(gin.Recovery())

	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")
	api.Use(MemberMiddleware(cfg.Members, cfg.DefaultMemberID))

	catalog := NewCatalogController(cfg.Catalog)
	api.GET("/home", catalog.Home)
	api.GET("/menu", catalog.Menu)
	api.GET("/books/by-category", catalog.ByCategory)
	api.POST("/books/:id/open", catalog.OpenBook)

	books := NewBooksController(cfg.Books, cfg.DefaultLimit)
	api.GET("/books/newest", books.Newest)
	api.GET("/books/top-rated", books.TopRated)
	api.GET("/books/most-viewed", books.MostViewed)
	api.GET("/books/search", books.Search)
	api.GET("/books/stats", books.Stats)
	api.GET("/books/:id", books.GetBook)
	api.GET("/books/:id/contents", books.Contents)
	api.POST("/books/:id/views", books.RecordView)
	api.GET("/books/:id/rating", books.MemberRating)
	api.PUT("/books/:id/rating", books.Rate)

	if cfg.Covers != nil {
		covers := NewCoversController(cfg.Books, cfg.Covers)
		api.GET("/books/:id/cover", covers.Cover)
	}

	categories := NewCategoriesController(cfg.Categories, cfg.Catalog)
	api.GET("/categories", categories.List)
	api.POST("/categories", categories.Create)
	api.GET("/categories/:id", categories.Get)
	api.PUT("/categories/:id", categories.Rename)
	api.DELETE("/categories/:id", categories.Delete)
	api.GET("/categories/:id/books", categories.Books)

	return router
}
