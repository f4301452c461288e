package handler

import (
	"Libro/config"
	"Libro/middleware"
	"Libro/pkg/context"
	"Libro/pkg/response"
	"Libro/service"
	"Libro/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	Config      *config.Config
	BookService service.IBookService
}

func (h *BookHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/book")
	g.GET("", context.Wrap(h.ListBooks))
	g.GET("/:id", context.Wrap(h.GetBook))
	g.POST("", authorize, context.Wrap(h.CreateBook))
	g.PUT("/:id", authorize, context.Wrap(h.UpdateBook))
	g.PATCH("/:id", authorize, context.Wrap(h.UpdateBook))
	g.DELETE("/:id", authorize, context.Wrap(h.DeleteBook))
}

// ListBooks 书籍列表，支持价格过滤/模糊搜索/排序
func (h *BookHandler) ListBooks(c *gin.Context) error {
	var query types.BookListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误: "+err.Error())
	}

	books, err := h.BookService.ListBooks(c.Request.Context(), &query)
	if err != nil {
		return err
	}
	response.Success(c, books)
	return nil
}

func (h *BookHandler) GetBook(c *gin.Context) error {
	bookID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	book, err := h.BookService.GetBook(c.Request.Context(), bookID)
	if err != nil {
		return err
	}
	response.Success(c, book)
	return nil
}

func (h *BookHandler) CreateBook(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}

	var req types.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误: "+err.Error())
	}

	bookID, err := h.BookService.CreateBook(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, types.CreateBookResponse{BookID: bookID})
	return nil
}

func (h *BookHandler) UpdateBook(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}
	bookID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req types.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误: "+err.Error())
	}

	if err := h.BookService.UpdateBook(c.Request.Context(), userID, bookID, &req); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *BookHandler) DeleteBook(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}
	bookID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.BookService.DeleteBook(c.Request.Context(), userID, bookID); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(http.StatusBadRequest, name+" 非法")
	}
	return id, nil
}
