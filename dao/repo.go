package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 通用 DAO 基类，按实体类型嵌入使用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Db.WithContext(ctx).Create(item).Error
}

func (r *Repo[T]) FindById(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByWhere 按条件查询单条，未找到返回 gorm.ErrRecordNotFound
func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...interface{}) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// IsExist 按条件判断记录是否存在
func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...interface{}) (bool, error) {
	var count int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo[T]) UpdateByWhere(ctx context.Context, data map[string]interface{}, where string, args ...interface{}) error {
	return r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Updates(data).Error
}

func (r *Repo[T]) DeleteByWhere(ctx context.Context, where string, args ...interface{}) error {
	return r.Db.WithContext(ctx).Where(where, args...).Delete(new(T)).Error
}
