package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Odoo      OdooConfig
	Warehouse WarehouseConfig
	Log       LogConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// OdooConfig holds the upstream Odoo connection used to import carriers
type OdooConfig struct {
	URL          string
	Database     string
	Username     string
	Password     string
	SyncInterval int // minutes
}

// WarehouseConfig is the sender address printed on shipping labels
type WarehouseConfig struct {
	Name    string
	Street  string
	Zip     string
	City    string
	Country string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string
	Development bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	nodeEnv := getEnv("NODE_ENV", "development")

	return &Config{
		NodeEnv:   nodeEnv,
		Port:      getEnv("PORT", "3210"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "eckship"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Odoo: OdooConfig{
			URL:          os.Getenv("ODOO_URL"),
			Database:     os.Getenv("ODOO_DB"),
			Username:     os.Getenv("ODOO_USERNAME"),
			Password:     os.Getenv("ODOO_PASSWORD"),
			SyncInterval: getEnvInt("ODOO_SYNC_INTERVAL", 15),
		},
		Warehouse: WarehouseConfig{
			Name:    getEnv("WAREHOUSE_NAME", "Warehouse"),
			Street:  os.Getenv("WAREHOUSE_STREET"),
			Zip:     os.Getenv("WAREHOUSE_ZIP"),
			City:    os.Getenv("WAREHOUSE_CITY"),
			Country: getEnv("WAREHOUSE_COUNTRY", "DE"),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: nodeEnv == "development",
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
