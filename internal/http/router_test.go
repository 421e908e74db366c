package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztacole/BacaDong/internal/config"
	"github.com/ztacole/BacaDong/internal/covers"
	"github.com/ztacole/BacaDong/internal/database"
	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/database/categories"
	"github.com/ztacole/BacaDong/internal/database/members"
	"github.com/ztacole/BacaDong/internal/demo"
	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/services"
)

type testServer struct {
	router    *gin.Engine
	db        *database.Database
	coversDir string
}

func setupTestServer(t *testing.T, demoMode bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(config.Database{
		Driver:    config.DriverSQLite,
		DSN:       filepath.Join(t.TempDir(), "http.db"),
		SlowQuery: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = demo.Seed(context.Background(), db.DB)
	require.NoError(t, err)

	bookRepo := books.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)
	coverCache, err := covers.NewCache(filepath.Join(t.TempDir(), "covers"))
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Books:           bookRepo,
		Categories:      categoryRepo,
		Members:         members.NewRepository(db.DB),
		Catalog:         services.NewCatalogService(bookRepo, categoryRepo, 5, "popular"),
		Covers:          coverCache,
		Database:        db,
		DefaultMemberID: 1,
		DefaultLimit:    5,
		Version:         "test",
		DemoMiddleware:  demo.NewMiddleware(demoMode),
		MetricsEnabled:  true,
	})
	return &testServer{router: router, db: db, coversDir: coverCache.Dir()}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type bookList struct {
	Data  []entities.CatalogBook `json:"data"`
	Count int                    `json:"count"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) bookID(t *testing.T, title string) uint {
	t.Helper()
	var book entities.Book
	require.NoError(t, s.db.DB.Where("title = ?", title).First(&book).Error)
	return book.ID
}

func TestRouter_Health(t *testing.T) {
	s := setupTestServer(t, false)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/books/newest", nil).Code)

	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	health := decode[HealthResponse](t, w)
	assert.Equal(t, "ok", health.Checks["database"])
	assert.Equal(t, "test", health.Version)

	w = s.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, "pong", w.Body.String())

	w = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bacadong_query_duration_seconds")
}

func TestRouter_BookLists(t *testing.T) {
	s := setupTestServer(t, false)

	t.Run("newest", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/newest?limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[bookList](t, w)
		require.Equal(t, 2, list.Count)
		assert.Equal(t, "Salah Asuhan", list.Data[0].Title)
		assert.Equal(t, "Siti Nurbaya", list.Data[1].Title)
	})

	t.Run("top rated puts unrated last", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/top-rated?limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[bookList](t, w)
		require.NotEmpty(t, list.Data)
		require.NotNil(t, list.Data[0].AverageRating)
		assert.Nil(t, list.Data[len(list.Data)-1].AverageRating)
	})

	t.Run("most viewed", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/most-viewed?limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[bookList](t, w)
		require.Len(t, list.Data, 1)
		assert.Equal(t, "The Time Machine", list.Data[0].Title)
		assert.Equal(t, int64(4), list.Data[0].ViewCount)
	})

	t.Run("default limit", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/newest", nil)
		list := decode[bookList](t, w)
		assert.Equal(t, 5, list.Count)
	})

	t.Run("invalid limits", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/books/newest?limit=0", nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/books/newest?limit=abc", nil).Code)
	})

	t.Run("search", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/search?q=darwin", nil)
		list := decode[bookList](t, w)
		require.Len(t, list.Data, 1)
		assert.Equal(t, "On the Origin of Species", list.Data[0].Title)

		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/books/search", nil).Code)
	})

	t.Run("stats", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/stats", nil)
		stats := decode[entities.CatalogStats](t, w)
		assert.Equal(t, int64(6), stats.Books)
		assert.Equal(t, int64(2), stats.Members)
	})
}

func TestRouter_BookDetail(t *testing.T) {
	s := setupTestServer(t, false)
	id := s.bookID(t, "Max Havelaar")

	t.Run("get", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/"+itoa(id), nil)
		require.Equal(t, http.StatusOK, w.Code)
		book := decode[entities.CatalogBook](t, w)
		assert.Equal(t, "Sejarah", book.CategoryName)
		assert.Equal(t, int64(2), book.ViewCount)
	})

	t.Run("missing book", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/books/9999", nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/books/abc", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/books/9999/open", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/books/9999/views", nil).Code)
	})

	t.Run("contents", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/"+itoa(id)+"/contents", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, decode[ListResponse](t, w).Count)
	})

	t.Run("open records a view", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/books/"+itoa(id)+"/open", nil)
		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.BookPage](t, w)
		assert.Equal(t, int64(3), page.Book.ViewCount)
		require.Len(t, page.Chapters, 2)
		assert.Equal(t, "Batavus Droogstoppel", page.Chapters[0].Title)
	})

	t.Run("views accumulate", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			w := s.do(t, http.MethodPost, "/api/books/"+itoa(id)+"/views", nil, HeaderMemberID, "2")
			require.Equal(t, http.StatusNoContent, w.Code)
		}
		book := decode[entities.CatalogBook](t, s.do(t, http.MethodGet, "/api/books/"+itoa(id), nil))
		assert.Equal(t, int64(6), book.ViewCount)
	})
}

func TestRouter_Rating(t *testing.T) {
	s := setupTestServer(t, false)
	id := s.bookID(t, "On the Origin of Species")
	path := "/api/books/" + itoa(id) + "/rating"

	w := s.do(t, http.MethodPut, path, RatingRequest{Rating: intPtr(4)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPut, path, RatingRequest{Rating: intPtr(2)}, HeaderMemberID, "2")
	require.Equal(t, http.StatusOK, w.Code)

	book := decode[entities.CatalogBook](t, s.do(t, http.MethodGet, "/api/books/"+itoa(id), nil))
	require.NotNil(t, book.AverageRating)
	assert.InDelta(t, 3.0, *book.AverageRating, 0.0001)

	w = s.do(t, http.MethodGet, path, nil)
	assert.JSONEq(t, `{"member_id":1,"rating":4}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, path, RatingRequest{Rating: intPtr(9)}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, path, map[string]any{}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/books/9999/rating", RatingRequest{Rating: intPtr(3)}).Code)
}

func TestRouter_Members(t *testing.T) {
	s := setupTestServer(t, false)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/home", nil, HeaderMemberID, "abc").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/home", nil, HeaderMemberID, "77").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/home", nil, HeaderMemberID, "2").Code)
}

func TestRouter_Home(t *testing.T) {
	s := setupTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/home", nil)

	require.Equal(t, http.StatusOK, w.Code)
	page := decode[services.HomePage](t, w)
	require.NotNil(t, page.Featured)
	assert.Equal(t, page.TopRated[0].ID, page.Featured.ID)
	assert.Len(t, page.Newest, 5)
	assert.Len(t, page.MostViewed, 5)
}

func TestRouter_Categories(t *testing.T) {
	s := setupTestServer(t, false)

	t.Run("list", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/categories", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, len(demo.SampleCategories), decode[ListResponse](t, w).Count)
	})

	t.Run("create rename delete", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/categories", CategoryRequest{Name: "Puisi"})
		require.Equal(t, http.StatusCreated, w.Code)
		created := decode[entities.Category](t, w)

		w = s.do(t, http.MethodPost, "/api/categories", CategoryRequest{Name: "Puisi"})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = s.do(t, http.MethodPut, "/api/categories/"+itoa(created.ID), CategoryRequest{Name: "Sajak"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Sajak", decode[entities.Category](t, w).Name)

		w = s.do(t, http.MethodDelete, "/api/categories/"+itoa(created.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = s.do(t, http.MethodGet, "/api/categories/"+itoa(created.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("category with books cannot be deleted", func(t *testing.T) {
		var fiksi entities.Category
		require.NoError(t, s.db.DB.Where("name = ?", "Fiksi").First(&fiksi).Error)

		w := s.do(t, http.MethodDelete, "/api/categories/"+itoa(fiksi.ID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("books by category id", func(t *testing.T) {
		var fiksi entities.Category
		require.NoError(t, s.db.DB.Where("name = ?", "Fiksi").First(&fiksi).Error)

		w := s.do(t, http.MethodGet, "/api/categories/"+itoa(fiksi.ID)+"/books?sort=alphabetical", nil)
		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.CategoryPage](t, w)
		assert.Equal(t, books.SortAlphabetical, page.Sort)
		require.Len(t, page.Books, 3)
		assert.Equal(t, "Salah Asuhan", page.Books[0].Title)
	})

	t.Run("books by category name", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books/by-category?name=fiksi", nil)
		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.CategoryPage](t, w)
		assert.Equal(t, "Fiksi", page.Category)
		assert.Equal(t, books.SortPopular, page.Sort)
		require.Len(t, page.Books, 3)
		assert.Equal(t, "The Time Machine", page.Books[0].Title)

		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/books/by-category", nil).Code)
	})

	t.Run("lowercase category keeps its books", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/categories", CategoryRequest{Name: "puisi"})
		require.Equal(t, http.StatusCreated, w.Code)
		puisi := decode[entities.Category](t, w)
		require.NoError(t, s.db.DB.Create(&entities.Book{
			Title:       "Aku",
			Author:      "Chairil Anwar",
			PublishDate: time.Date(1943, 3, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:  puisi.ID,
		}).Error)

		w = s.do(t, http.MethodGet, "/api/categories/"+itoa(puisi.ID)+"/books", nil)
		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.CategoryPage](t, w)
		assert.Equal(t, "puisi", page.Category)
		require.Len(t, page.Books, 1)
		assert.Equal(t, "Aku", page.Books[0].Title)

		w = s.do(t, http.MethodGet, "/api/books/by-category?name=puisi", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[services.CategoryPage](t, w).Books, 1)
	})
}

func TestRouter_DemoMode(t *testing.T) {
	s := setupTestServer(t, true)
	id := s.bookID(t, "Siti Nurbaya")

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/categories", CategoryRequest{Name: "Puisi"}).Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/books/"+itoa(id)+"/views", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/books/"+itoa(id)+"/rating", RatingRequest{Rating: intPtr(5)}).Code)
}

func TestRouter_Covers(t *testing.T) {
	s := setupTestServer(t, false)
	bookID := s.bookID(t, "Max Havelaar")
	id := itoa(bookID)

	w := s.do(t, http.MethodGet, "/api/books/"+id+"/cover", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "no cover and no default")

	require.NoError(t, os.WriteFile(filepath.Join(s.coversDir, covers.DefaultCover), []byte("default jpeg"), 0o644))

	w = s.do(t, http.MethodGet, "/api/books/"+id+"/cover", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default jpeg", w.Body.String())
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))

	cover := "max-havelaar.jpg"
	require.NoError(t, os.WriteFile(filepath.Join(s.coversDir, cover), []byte("havelaar jpeg"), 0o644))
	require.NoError(t, s.db.DB.Model(&entities.Book{}).Where("id = ?", bookID).Update("image_cover", cover).Error)

	w = s.do(t, http.MethodGet, "/api/books/"+id+"/cover", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "havelaar jpeg", w.Body.String())

	w = s.do(t, http.MethodGet, "/api/books/999/cover", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	require.NoError(t, s.db.DB.Model(&entities.Book{}).Where("id = ?", bookID).Update("image_cover", broken.URL+"/gone.jpg").Error)

	w = s.do(t, http.MethodGet, "/api/books/"+id+"/cover", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "bad_gateway", decode[ErrorResponse](t, w).Code)
}

func intPtr(v int) *int {
	return &v
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
