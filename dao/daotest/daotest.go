// Package daotest 为测试提供独立的 sqlite 数据库
package daotest

import (
	"Mingle/config"
	"Mingle/pkg/database"
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// Open 每个测试一个临时数据库文件，测试结束自动关闭
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	conf := &config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "mingle.db"),
	}
	db, err := database.Open(conf, false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
