package database

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// newGormLogger gorm 日志输出到 logrus，级别: silent, error, warn, info
func newGormLogger(level string) logger.Interface {
	return logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  parseLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}
