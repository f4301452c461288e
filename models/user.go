package models

import "time"

// Users 用户，对应表 users
// ID 用雪花算法生成
type Users struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Username  string    `gorm:"column:username;type:varchar(64);not null;uniqueIndex:uk_username" json:"username"`
	Password  string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	IsStaff   bool      `gorm:"column:is_staff;not null;default:0" json:"is_staff"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Users) TableName() string { return "users" }
