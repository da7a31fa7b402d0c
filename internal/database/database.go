package database

import (
	"context"
	"fmt"
	"time"

	"terminal-terrace/conduit/config"
	"terminal-terrace/conduit/internal/model"
	dbPkg "terminal-terrace/conduit/packages/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const serviceName = "conduit"

// Store 持有关系库连接与可选的 Redis 客户端
type Store struct {
	DB    *gorm.DB
	Redis *dbPkg.RedisClient // redis.enabled 为 false 时为 nil
}

// Open 按配置连接数据库、迁移表结构，并按需连接 Redis 和注册链路追踪回调
func Open(conf *config.AppConfig) (*Store, error) {
	db, err := openDB(conf.Database)
	if err != nil {
		return nil, err
	}

	if conf.Telemetry.Enabled {
		if err := RegisterCallbacks(db, conf.Database.Driver); err != nil {
			return nil, fmt.Errorf("注册链路追踪回调失败: %w", err)
		}
	}

	if err := model.InitTable(db); err != nil {
		return nil, err
	}

	store := &Store{DB: db}
	if conf.Redis.Enabled {
		redisConf := conf.Redis
		store.Redis, err = dbPkg.InitRedis(&dbPkg.RedisConfig{
			ServiceName: serviceName,
			Host:        redisConf.Host,
			Port:        redisConf.Port,
			Password:    redisConf.Password,
			DB:          redisConf.DB,
			PoolSize:    redisConf.PoolSize,
		})
		if err != nil {
			return nil, err
		}
	} else {
		logrus.Info("redis disabled, sessions are not tracked")
	}

	return store, nil
}

func openDB(databaseConf config.DatabaseConfig) (*gorm.DB, error) {
	switch databaseConf.Driver {
	case "sqlite":
		return dbPkg.InitSQLite(&dbPkg.SQLiteConfig{
			ServiceName: serviceName,
			Path:        databaseConf.Path,
			LogLevel:    databaseConf.LogLevel,
		})
	default:
		return dbPkg.InitPostgres(&dbPkg.PostgresConfig{
			ServiceName:     serviceName,
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        databaseConf.LogLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		})
	}
}

// Ping 检查数据库连通性
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭所有连接
func (s *Store) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logrus.WithError(err).Warn("关闭 Redis 连接失败")
		}
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
