package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resto-live/auth"
)

type Config struct {
	Port          string
	CashierSecret string
	KitchenSecret string
}

func Load() Config {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		CashierSecret: os.Getenv("CASHIER_TOKEN"),
		KitchenSecret: os.Getenv("KITCHEN_TOKEN"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}

// Gate builds the access gate from the configured shared secrets.
func (c Config) Gate() *auth.Gate {
	return auth.NewGate(c.CashierSecret, c.KitchenSecret)
}

// InitDB opens the configured database. DB_DRIVER=mysql selects MySQL
// with a DSN assembled from the usual env variables; anything else
// falls back to a local sqlite file.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "mysql" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASS"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "resto.db"
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
