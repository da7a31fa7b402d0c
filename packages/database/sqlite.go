package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SQLiteConfig SQLite 配置（本地开发与测试）
type SQLiteConfig struct {
	ServiceName string // 服务名称，用于日志标识
	Path        string // 数据库文件路径，":memory:" 为内存库
	LogLevel    string // 日志级别: silent, error, warn, info
}

// InitSQLite 初始化 SQLite 连接（纯 Go 驱动，无需 cgo）
func InitSQLite(config *SQLiteConfig) (*gorm.DB, error) {
	if config == nil {
		return nil, fmt.Errorf("配置不能为空")
	}
	if config.Path == "" {
		config.Path = ":memory:"
	}
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}

	db, err := gorm.Open(sqlite.Open(config.Path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         newGormLogger(config.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库实例失败: %w", err)
	}
	// 内存库每个连接都是独立的数据库，SQLite 也只允许单写者
	sqlDB.SetMaxOpenConns(1)

	logrus.WithFields(logrus.Fields{
		"service": serviceNameOrDefault(config.ServiceName),
		"path":    config.Path,
	}).Info("sqlite connected")
	return db, nil
}
