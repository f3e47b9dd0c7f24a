package dao

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type txKey struct{}

// Repo 通用仓储，DAO 通过嵌入复用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// Conn 优先使用 ctx 中的事务连接
func (r Repo[T]) Conn(ctx context.Context) *gorm.DB {
	return conn(ctx, r.Db)
}

func (r Repo[T]) Create(ctx context.Context, v *T) error {
	return r.Conn(ctx).Create(v).Error
}

// CreateInSavepoint 在当前事务内用保存点插入，失败只回滚这一条
func (r Repo[T]) CreateInSavepoint(ctx context.Context, v *T) error {
	return r.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(v).Error
	})
}

func (r Repo[T]) FindById(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.Conn(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Conn(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	err := r.Conn(ctx).Model(new(T)).Where(where, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r Repo[T]) UpdateById(ctx context.Context, id int64, data map[string]any) (int64, error) {
	res := r.Conn(ctx).Model(new(T)).Where("id = ?", id).Updates(data)
	return res.RowsAffected, res.Error
}

func (r Repo[T]) DeleteById(ctx context.Context, id int64) (int64, error) {
	res := r.Conn(ctx).Where("id = ?", id).Delete(new(T))
	return res.RowsAffected, res.Error
}

func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// IsDuplicateKey 唯一键冲突，兼容未开启 TranslateError 的连接
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// IsNotFound 记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
