package cli

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	platformmysql "github.com/Ssshtea/DBMS-cp/internal/platform/mysql"
)

// Config carries environment-driven settings for the console.
type Config struct {
	DB                platformmysql.Config
	StrictStock       bool
	LowStockThreshold int
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "clothing_store")
	v.SetDefault("DB_POOL_SIZE", 5)
	v.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 10)
	v.SetDefault("STRICT_STOCK", false)
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.AutomaticEnv()

	cfg := Config{
		DB: platformmysql.Config{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetInt("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Database:       v.GetString("DB_NAME"),
			PoolSize:       v.GetInt("DB_POOL_SIZE"),
			ConnectTimeout: time.Duration(v.GetInt("DB_CONNECT_TIMEOUT_SECONDS")) * time.Second,
		},
		StrictStock:       v.GetBool("STRICT_STOCK"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
	}
	if cfg.DB.Database == "" {
		return Config{}, fmt.Errorf("DB_NAME must not be empty")
	}
	return cfg, nil
}
