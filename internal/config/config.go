// Package config loads service configuration: file, then environment
// overrides, then defaults. System-level assumption overrides live here and
// layer on top of the code defaults at wiring time.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

type Config struct {
	Server      ServerConfig               `mapstructure:"server"`
	Db          DbConfig                   `mapstructure:"db"`
	Redis       RedisConfig                `mapstructure:"redis"`
	Reference   ReferenceConfig            `mapstructure:"reference"`
	Assumptions domain.AssumptionOverrides `mapstructure:"assumptions"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	JwtSecret string `mapstructure:"jwt_secret"`
}

type DbConfig struct {
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	EnableSsl bool   `mapstructure:"enable_ssl"`
}

func (c DbConfig) ConnectionStr() string {
	s := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		c.Host, c.Port, c.User, c.Password, c.Database)
	if !c.EnableSsl {
		s += " sslmode=disable"
	}
	return s
}

type RedisConfig struct {
	Addr    string        `mapstructure:"addr"`
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type ReferenceConfig struct {
	CurveFile  string `mapstructure:"curve_file"`
	SchoolFile string `mapstructure:"school_file"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	v.SetEnvPrefix("REPORTING")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3009)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.database", "postgres")
	v.SetDefault("db.enable_ssl", false)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.ttl", "15m")

	v.SetDefault("reference.curve_file", "./reference/risk_curves.json")
	v.SetDefault("reference.school_file", "./reference/schools.csv")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.Reference.CurveFile == "" {
		return fmt.Errorf("reference.curve_file is required")
	}
	if c.Reference.SchoolFile == "" {
		return fmt.Errorf("reference.school_file is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	return nil
}
