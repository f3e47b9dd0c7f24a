package dao

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Transactor 把事务放进 ctx，同一事务内的 DAO 调用共享连接
type Transactor struct {
	Db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{Db: db}
}

// Transaction ctx 中已有事务时开启保存点
func (t *Transactor) Transaction(ctx context.Context, fn func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return conn(ctx, t.Db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, opts...)
}

// ReadSnapshot 只读快照，一次请求内的多条统计查询看到同一时刻的数据
func (t *Transactor) ReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}
	return t.Transaction(ctx, fn, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}
