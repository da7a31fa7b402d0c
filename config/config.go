// config/config.go - 配置管理文件
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// EnvPrefix 环境变量前缀，层级用双下划线分隔：CONDUIT_JWT__SECRET -> jwt.secret
const EnvPrefix = "CONDUIT_"

// Load 加载配置：.env -> 配置文件 -> 环境变量（依次覆盖）
func Load(configPath string) (*AppConfig, error) {
	// 首先加载 .env 文件到环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn("无法加载 .env 文件")
	}

	k := koanf.New(".")

	// 先加载配置文件，文件不存在时只使用环境变量
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("加载配置文件失败: %w", err)
			}
		} else {
			logrus.WithField("path", configPath).Warn("配置文件不存在，仅使用环境变量")
		}
	}

	// 再加载环境变量（覆盖配置文件）
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("加载环境变量失败: %w", err)
	}

	// 解析到结构体
	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	conf.setDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// MustLoad 加载配置，失败则退出
func MustLoad(configPath string) *AppConfig {
	conf, err := Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("配置加载失败")
	}
	return conf
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
