package handler

import (
	"Libro/pkg/context"
	"Libro/pkg/response"
	"Libro/types"
	stdctx "context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubBookService struct {
	books     []*types.BookResponse
	getRes    *types.BookResponse
	getErr    error
	lastQuery *types.BookListQuery
	created   *types.CreateBookRequest
	deleted   int64
}

func (s *stubBookService) ListBooks(_ stdctx.Context, query *types.BookListQuery) ([]*types.BookResponse, error) {
	s.lastQuery = query
	return s.books, nil
}

func (s *stubBookService) GetBook(_ stdctx.Context, bookID int64) (*types.BookResponse, error) {
	return s.getRes, s.getErr
}

func (s *stubBookService) CreateBook(_ stdctx.Context, userID int64, req *types.CreateBookRequest) (int64, error) {
	s.created = req
	return 101, nil
}

func (s *stubBookService) UpdateBook(_ stdctx.Context, userID int64, bookID int64, req *types.UpdateBookRequest) error {
	return nil
}

func (s *stubBookService) DeleteBook(_ stdctx.Context, userID int64, bookID int64) error {
	s.deleted = bookID
	return nil
}

func newBookRouter(svc *stubBookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(42))
	})
	h := &BookHandler{BookService: svc}
	r.GET("/book", context.Wrap(h.ListBooks))
	r.GET("/book/:id", context.Wrap(h.GetBook))
	r.POST("/book", context.Wrap(h.CreateBook))
	r.DELETE("/book/:id", context.Wrap(h.DeleteBook))
	return r
}

func TestListBooks(t *testing.T) {
	owner := "alice"
	svc := &stubBookService{
		books: []*types.BookResponse{
			{ID: 1, Name: "Go in Action", Price: 100, EndPrice: 50, CountLikes: 2, OwnerName: &owner},
		},
	}
	r := newBookRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/book?price=100&search=go&ordering=-price", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.lastQuery == nil || svc.lastQuery.Price == nil || *svc.lastQuery.Price != 100 {
		t.Fatalf("price filter not propagated: %+v", svc.lastQuery)
	}
	if svc.lastQuery.Search != "go" || svc.lastQuery.Ordering != "-price" {
		t.Fatalf("query not propagated: %+v", svc.lastQuery)
	}

	var body struct {
		Code int                   `json:"code"`
		Data []*types.BookResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != 1 || body.Data[0].EndPrice != 50 {
		t.Fatalf("unexpected body: %+v", body.Data)
	}
}

func TestGetBook_BadID(t *testing.T) {
	r := newBookRouter(&stubBookService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/book/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	svc := &stubBookService{getErr: response.NewError(http.StatusNotFound, "书籍不存在")}
	r := newBookRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/book/999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateBook(t *testing.T) {
	svc := &stubBookService{}
	r := newBookRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book",
		strings.NewReader(`{"name": "Clean Code", "author": "Robert Martin", "price": 59.99}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.created == nil || svc.created.Name != "Clean Code" {
		t.Fatalf("create not propagated: %+v", svc.created)
	}

	var body struct {
		Data types.CreateBookResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.BookID != 101 {
		t.Fatalf("book_id = %d, want 101", body.Data.BookID)
	}
}

func TestCreateBook_MissingName(t *testing.T) {
	r := newBookRouter(&stubBookService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(`{"author": "x", "price": 10}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteBook(t *testing.T) {
	svc := &stubBookService{}
	r := newBookRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/book/5", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.deleted != 5 {
		t.Fatalf("deleted = %d, want 5", svc.deleted)
	}
}
