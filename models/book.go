package models

import "time"

// Book 书籍，对应表 books
// rating 由评分聚合维护，业务代码不要直接改
type Book struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Author    string    `gorm:"column:author;type:varchar(150);not null" json:"author"`
	Price     float64   `gorm:"column:price;type:decimal(7,2);not null" json:"price"`
	Discount  *float64  `gorm:"column:discount;type:decimal(3,2);default:null" json:"discount"`
	Rating    *float64  `gorm:"column:rating;type:decimal(3,2);default:null" json:"rating"`
	OwnerID   *int64    `gorm:"column:owner_id;index:idx_owner_id" json:"owner_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Book) TableName() string { return "books" }

// BookProjection 列表/详情查询的读模型，count_likes 等字段都在 SQL 里算好
type BookProjection struct {
	Book
	CountLikes     int64   `gorm:"column:count_likes" json:"count_likes"`
	CountBookmarks int64   `gorm:"column:count_bookmarks" json:"count_bookmarks"`
	OwnerName      *string `gorm:"column:owner_name" json:"owner_name"`
	EndPrice       float64 `gorm:"column:end_price" json:"end_price"`
}
