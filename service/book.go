package service

import (
	"Libro/dao"
	"Libro/models"
	"Libro/pkg/response"
	"Libro/types"
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var _ IBookService = (*BookService)(nil)

type IBookService interface {
	ListBooks(ctx context.Context, query *types.BookListQuery) ([]*types.BookResponse, error)
	GetBook(ctx context.Context, bookID int64) (*types.BookResponse, error)
	CreateBook(ctx context.Context, userID int64, req *types.CreateBookRequest) (int64, error)
	UpdateBook(ctx context.Context, userID int64, bookID int64, req *types.UpdateBookRequest) error
	DeleteBook(ctx context.Context, userID int64, bookID int64) error
}

type BookService struct {
	BookDAO     *dao.BookDAO
	RelationDAO *dao.UserBookRelationDAO
	UsersDAO    *dao.Users
}

// CanModifyBook 写权限：书籍属主或后台用户
// 读操作不经过这里，对所有人开放
func CanModifyBook(user *models.Users, book *models.Book) bool {
	if user == nil {
		return false
	}
	if user.IsStaff {
		return true
	}
	return book.OwnerID != nil && *book.OwnerID == user.ID
}

func validatePrice(price float64) error {
	if price <= 0 || price > 99999.99 {
		return response.NewError(http.StatusBadRequest, "price 超出合法范围")
	}
	return nil
}

func validateDiscount(discount *float64) error {
	if discount == nil {
		return nil
	}
	if *discount < 0 || *discount > 1 {
		return response.NewError(http.StatusBadRequest, "discount 必须在 0~1 之间")
	}
	return nil
}

// ListBooks 书籍列表，读模型 + 读者列表
func (s *BookService) ListBooks(ctx context.Context, query *types.BookListQuery) ([]*types.BookResponse, error) {
	rows, err := s.BookDAO.ListProjected(ctx, query)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	readers, err := s.RelationDAO.ReadersByBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*types.BookResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, buildBookResponse(row, readers[row.ID]))
	}
	return result, nil
}

func (s *BookService) GetBook(ctx context.Context, bookID int64) (*types.BookResponse, error) {
	row, err := s.BookDAO.GetProjected(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, response.NewError(http.StatusNotFound, "书籍不存在")
	}

	readers, err := s.RelationDAO.ReadersByBookIDs(ctx, []int64{bookID})
	if err != nil {
		return nil, err
	}
	return buildBookResponse(row, readers[bookID]), nil
}

// CreateBook 创建书籍，当前登录用户成为属主
func (s *BookService) CreateBook(ctx context.Context, userID int64, req *types.CreateBookRequest) (int64, error) {
	if err := validatePrice(req.Price); err != nil {
		return 0, err
	}
	if err := validateDiscount(req.Discount); err != nil {
		return 0, err
	}

	book := &models.Book{
		Name:     req.Name,
		Author:   req.Author,
		Price:    req.Price,
		Discount: req.Discount,
		OwnerID:  &userID,
	}
	if err := s.BookDAO.Create(ctx, book); err != nil {
		return 0, err
	}
	return book.ID, nil
}

func (s *BookService) UpdateBook(ctx context.Context, userID int64, bookID int64, req *types.UpdateBookRequest) error {
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return err
		}
	}
	if err := validateDiscount(req.Discount); err != nil {
		return err
	}

	book, err := s.loadBookForWrite(ctx, userID, bookID)
	if err != nil {
		return err
	}
	return s.BookDAO.UpdateById(ctx, book.ID, buildBookUpdates(req))
}

func buildBookUpdates(req *types.UpdateBookRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.HasDiscount {
		// 指针直接进 map，传 null 时写库为 NULL 清除折扣
		updates["discount"] = req.Discount
	}
	return updates
}

// DeleteBook 删除书籍并级联删除关系记录
func (s *BookService) DeleteBook(ctx context.Context, userID int64, bookID int64) error {
	book, err := s.loadBookForWrite(ctx, userID, bookID)
	if err != nil {
		return err
	}
	return s.BookDAO.DeleteWithRelations(ctx, book.ID)
}

// loadBookForWrite 取书并做写权限检查，404 在 403 之前
func (s *BookService) loadBookForWrite(ctx context.Context, userID int64, bookID int64) (*models.Book, error) {
	book, err := s.BookDAO.FindById(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewError(http.StatusNotFound, "书籍不存在")
	}
	if err != nil {
		return nil, err
	}

	user, err := s.UsersDAO.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewError(http.StatusForbidden, "没有操作权限")
	}
	if err != nil {
		return nil, err
	}

	if !CanModifyBook(user, book) {
		return nil, response.NewError(http.StatusForbidden, "没有操作权限")
	}
	return book, nil
}

func buildBookResponse(row *models.BookProjection, readers []*types.BookReader) *types.BookResponse {
	if readers == nil {
		readers = []*types.BookReader{}
	}
	return &types.BookResponse{
		ID:             row.ID,
		Name:           row.Name,
		Price:          row.Price,
		Author:         row.Author,
		CountLikes:     row.CountLikes,
		Rating:         row.Rating,
		CountBookmarks: row.CountBookmarks,
		OwnerName:      row.OwnerName,
		Readers:        readers,
		Discount:       row.Discount,
		EndPrice:       row.EndPrice,
	}
}
