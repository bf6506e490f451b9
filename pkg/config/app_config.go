package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// 存档后端
const (
	SaveBackendGdata  = "gdata"
	SaveBackendSQLite = "sqlite"
	SaveBackendMemory = "memory"
)

// AppConfig 应用启动配置
// 先从环境变量读取，命令行参数可以覆盖（见 main.go）
type AppConfig struct {
	Verbose        bool   `env:"NUTRIQUEST_VERBOSE" envDefault:"false"`
	Player         string `env:"NUTRIQUEST_PLAYER"`                                // 玩家ID，为空时使用上次的玩家或新建
	SaveBackend    string `env:"NUTRIQUEST_SAVE_BACKEND" envDefault:"gdata"`       // gdata / sqlite / memory
	SQLitePath     string `env:"NUTRIQUEST_SQLITE_PATH" envDefault:"nutriquest.db"` // sqlite 后端的数据库文件
	LocationPolicy string `env:"NUTRIQUEST_LOCATION_POLICY" envDefault:"lenient"`  // lenient / strict
	Lang           string `env:"NUTRIQUEST_LANG" envDefault:"en"`                   // 界面语言，如 "en", "pt-BR"
	CatalogPath    string `env:"NUTRIQUEST_CATALOG"`                               // 可选：覆盖内置教学目录的YAML文件
}

// ParseEnv 从环境变量加载配置
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadAppConfig 读取环境变量并校验
func LoadAppConfig() (AppConfig, error) {
	var cfg AppConfig
	if err := ParseEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c AppConfig) Validate() error {
	switch c.SaveBackend {
	case SaveBackendGdata, SaveBackendSQLite, SaveBackendMemory:
	default:
		return fmt.Errorf("save backend must be one of: gdata, sqlite, memory, got %q", c.SaveBackend)
	}

	if c.SaveBackend == SaveBackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite save backend requires a database path")
	}

	switch c.LocationPolicy {
	case "", "lenient", "strict":
	default:
		return fmt.Errorf("location policy must be one of: lenient, strict, got %q", c.LocationPolicy)
	}

	return nil
}
