package models

import "time"

// UserBookRelation 用户与书籍的关系记录
// 对应表 user_book_relations
// 唯一键: book_id + user_id
// rate: 1~5 评分，NULL 表示未评分
type UserBookRelation struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BookID     int64     `gorm:"column:book_id;not null;uniqueIndex:uk_book_user,priority:1" json:"book_id"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:uk_book_user,priority:2" json:"user_id"`
	Rate       *int16    `gorm:"column:rate" json:"rate"`
	Like       bool      `gorm:"column:like;not null;default:0" json:"like"`
	IsBookmark bool      `gorm:"column:is_bookmark;not null;default:0" json:"is_bookmark"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserBookRelation) TableName() string { return "user_book_relations" }
