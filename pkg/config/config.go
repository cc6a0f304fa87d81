// Package config 提供 TOML 配置加载、环境变量覆盖与 schema 校验
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wyfcoding/banking/pkg/logger"
)

// Config 服务配置
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 指标配置
	Metrics MetricsConfig `mapstructure:"metrics"`
	// 日志配置
	Logger logger.Config `mapstructure:"logger"`
	// 会话配置
	Session SessionConfig `mapstructure:"session"`
	// 账本配置
	Ledger LedgerConfig `mapstructure:"ledger"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	// 监听地址
	Host string `mapstructure:"host"`
	// 监听端口
	Port int `mapstructure:"port"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `mapstructure:"enabled"`
	// Prometheus 监听端口
	Port int `mapstructure:"port"`
	// 指标路径
	Path string `mapstructure:"path"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	// 会话有效期（分钟）
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// LedgerConfig 账本配置
type LedgerConfig struct {
	// 转账所需的最小注册账户数
	MinAccountsForTransfer int `mapstructure:"min_accounts_for_transfer"`
	// bcrypt cost，0 表示使用默认值
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// Load 从 TOML 文件加载配置，支持 APP_ 前缀的环境变量覆盖。
// 配置文件不存在时使用默认值。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	_ = v.ReadInConfig()

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port: %d", c.Metrics.Port)
	}
	if c.Session.TTLMinutes < 0 {
		return fmt.Errorf("invalid session ttl: %d", c.Session.TTLMinutes)
	}
	if c.Ledger.MinAccountsForTransfer < 2 {
		return fmt.Errorf("min_accounts_for_transfer must be at least 2")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "ledger")
	v.SetDefault("environment", "dev")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/app.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", false)

	v.SetDefault("session.ttl_minutes", 30)

	v.SetDefault("ledger.min_accounts_for_transfer", 2)
	v.SetDefault("ledger.bcrypt_cost", 0)
}
