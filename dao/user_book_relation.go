package dao

import (
	"Libro/models"
	"Libro/types"
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserBookRelationDAO struct {
	Repo[models.UserBookRelation]
}

func NewUserBookRelationDAO(db *gorm.DB) *UserBookRelationDAO {
	return &UserBookRelationDAO{Repo: NewRepo[models.UserBookRelation](db)}
}

// GetByBookUser 查询指定用户对指定书籍的关系记录，不存在返回 nil
func (d *UserBookRelationDAO) GetByBookUser(ctx context.Context, bookID int64, userID int64) (*models.UserBookRelation, error) {
	var item models.UserBookRelation
	err := d.Db.WithContext(ctx).Where("book_id = ? AND user_id = ?", bookID, userID).Limit(1).Find(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

// GetOrCreate 取出或创建 (book, user) 的关系记录
// 靠 uk_book_user 唯一键 + ON CONFLICT 兜底并发：
// 插入撞了唯一键就把赢家那行读回来，并发下最多只会产生一行
// 返回值第二个 bool 表示这次调用是否真的创建了新行
func (d *UserBookRelationDAO) GetOrCreate(tx *gorm.DB, bookID int64, userID int64) (*models.UserBookRelation, bool, error) {
	var item models.UserBookRelation
	err := tx.Where("book_id = ? AND user_id = ?", bookID, userID).Limit(1).Find(&item).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if item.ID != 0 {
		return &item, false, nil
	}

	item = models.UserBookRelation{BookID: bookID, UserID: userID}
	err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, err
	}
	if item.ID != 0 && err == nil {
		return &item, true, nil
	}

	// 唯一键冲突，说明并发请求先插了一行
	// REPEATABLE READ 下普通读还停留在插入前的旧快照，看不到赢家那行，
	// 必须用加锁读取最新提交的数据
	item = models.UserBookRelation{}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&item).Error; err != nil {
		return nil, false, err
	}
	return &item, false, nil
}

// UpdateById 部分更新关系记录字段
func (d *UserBookRelationDAO) UpdateById(tx *gorm.DB, id int64, data map[string]interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return tx.Model(&models.UserBookRelation{}).Where("id = ?", id).Updates(data).Error
}

// AverageRate 书籍当前全部非空评分的算术平均值
// 没有任何评分时返回 nil
func (d *UserBookRelationDAO) AverageRate(tx *gorm.DB, bookID int64) (*float64, error) {
	var avg sql.NullFloat64
	err := tx.Model(&models.UserBookRelation{}).
		Where("book_id = ?", bookID).
		Select("AVG(rate)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// ReadersByBookIDs 批量查询书籍的读者（有关系记录的用户），按 book_id 分组
func (d *UserBookRelationDAO) ReadersByBookIDs(ctx context.Context, bookIDs []int64) (map[int64][]*types.BookReader, error) {
	result := make(map[int64][]*types.BookReader, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		BookID   int64  `gorm:"column:book_id"`
		UserID   int64  `gorm:"column:user_id"`
		Username string `gorm:"column:username"`
	}
	err := d.Db.WithContext(ctx).Table("user_book_relations r").
		Select("r.book_id, u.id AS user_id, u.username").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.book_id IN ?", bookIDs).
		Order("r.book_id, u.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.BookID] = append(result[row.BookID], &types.BookReader{
			ID:       row.UserID,
			Username: row.Username,
		})
	}
	return result, nil
}
