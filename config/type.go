package config

import (
	"errors"
	"time"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server    ServerConfig    `koanf:"server"`
	GRPC      GRPCConfig      `koanf:"grpc"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Log       LogConfig       `koanf:"log"`
	JWT       JWTConfig       `koanf:"jwt"`
	Auth      AuthConfig      `koanf:"auth"`
	CORS      CORSConfig      `koanf:"cors"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type GRPCConfig struct {
	Port int `koanf:"port"` // 0 表示不启动 gRPC 健康检查服务
}

type ServerConfig struct {
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"`
	Mode           string `koanf:"mode"`            // debug, release, test
	ReadTimeout    int    `koanf:"read_timeout"`    // 秒
	WriteTimeout   int    `koanf:"write_timeout"`   // 秒
	RequestTimeout int    `koanf:"request_timeout"` // 秒，单个请求访问存储的超时
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // postgres, sqlite
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	Path         string `koanf:"path"` // sqlite 文件路径
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
}

type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name"`
	Endpoint    string `koanf:"endpoint"` // OTLP gRPC 地址
}

// TokenTTL 令牌有效期
func (c JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.ExpireTime) * time.Hour
}

// RequestTimeoutDuration 请求超时
func (c ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c *AppConfig) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.LogLevel == "" {
		c.Database.LogLevel = "silent"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.JWT.ExpireTime == 0 {
		c.JWT.ExpireTime = 24 * 7
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "conduit"
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4317"
	}
}

// Validate 校验必填配置
func (c *AppConfig) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret 不能为空")
	}
	if c.JWT.ExpireTime < 0 {
		return errors.New("jwt.expire_time 不能为负数")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return errors.New("database.driver 只支持 postgres 或 sqlite")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return errors.New("server.mode 只支持 debug、release 或 test")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return errors.New("auth.bcrypt_cost 必须在 4-31 之间")
	}
	return nil
}
