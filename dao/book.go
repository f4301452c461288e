package dao

import (
	"Libro/models"
	"Libro/types"
	"context"
	"strings"

	"gorm.io/gorm"
)

type BookDAO struct {
	Repo[models.Book]
}

func NewBookDAO(db *gorm.DB) *BookDAO {
	return &BookDAO{Repo: NewRepo[models.Book](db)}
}

// 排序白名单，防止把用户输入拼进 ORDER BY
var bookOrderings = map[string]string{
	"id":     "books.id ASC",
	"-id":    "books.id DESC",
	"price":  "books.price ASC",
	"-price": "books.price DESC",
}

// projected 列表/详情共用的读模型查询
// 点赞数、收藏数、作者名、折后价全部在这一条 SQL 里算出来，
// 过滤和排序直接叠在同一个查询上
func (d *BookDAO) projected(ctx context.Context) *gorm.DB {
	return d.Db.WithContext(ctx).Table("books").
		Select("books.*, " +
			"COUNT(CASE WHEN r.`like` = 1 THEN 1 END) AS count_likes, " +
			"COUNT(CASE WHEN r.is_bookmark = 1 THEN 1 END) AS count_bookmarks, " +
			"u.username AS owner_name, " +
			"CASE WHEN books.discount > 0 THEN ROUND(books.price * (1 - books.discount), 2) ELSE books.price END AS end_price").
		Joins("LEFT JOIN user_book_relations r ON r.book_id = books.id").
		Joins("LEFT JOIN users u ON u.id = books.owner_id").
		Group("books.id, u.username")
}

// ListProjected 读模型列表查询
func (d *BookDAO) ListProjected(ctx context.Context, opt *types.BookListQuery) ([]*models.BookProjection, error) {
	q := d.projected(ctx)
	if opt != nil {
		if opt.Price != nil {
			q = q.Where("books.price = ?", *opt.Price)
		}
		if opt.Search != "" {
			pattern := "%" + strings.ToLower(opt.Search) + "%"
			q = q.Where("LOWER(books.name) LIKE ? OR LOWER(books.author) LIKE ?", pattern, pattern)
		}
	}
	order := "books.id ASC"
	if opt != nil && opt.Ordering != "" {
		if o, ok := bookOrderings[opt.Ordering]; ok {
			order = o
		}
	}

	var rows []*models.BookProjection
	err := q.Order(order).Find(&rows).Error
	return rows, err
}

// GetProjected 读模型单条查询，未找到返回 nil
func (d *BookDAO) GetProjected(ctx context.Context, bookID int64) (*models.BookProjection, error) {
	var row models.BookProjection
	err := d.projected(ctx).Where("books.id = ?", bookID).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (d *BookDAO) UpdateById(ctx context.Context, bookID int64, data map[string]interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(data).Error
}

// DeleteWithRelations 删除书籍并级联删除关系记录，同一事务提交
func (d *BookDAO) DeleteWithRelations(ctx context.Context, bookID int64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&models.UserBookRelation{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", bookID).Delete(&models.Book{}).Error
	})
}
