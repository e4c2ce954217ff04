package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bluekeys/repair_shop/internal/models"
)

type Config struct {
	HTTP_ADDR              string
	DB_HOST                string
	DB_PORT                string
	DB_USER                string
	DB_PASSWORD            string
	DB_NAME                string
	JWT_SECRET             string
	TOKEN_EXPIRATION_HOURS int
	KAFKA_ADDRESS          string
	ES_URL                 string
	ES_USER                string
	ES_PASSWORD            string
	LOG_LEVEL              string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:              getEnv("HTTP_ADDR", ":8080"),
		DB_HOST:                os.Getenv("DB_HOST"),
		DB_PORT:                os.Getenv("DB_PORT"),
		DB_USER:                os.Getenv("DB_USER"),
		DB_PASSWORD:            os.Getenv("DB_PASSWORD"),
		DB_NAME:                os.Getenv("DB_NAME"),
		JWT_SECRET:             os.Getenv("JWT_SECRET"),
		TOKEN_EXPIRATION_HOURS: getEnvInt("TOKEN_EXPIRATION_HOURS", 1),
		KAFKA_ADDRESS:          os.Getenv("KAFKA_ADDRESS"),
		ES_URL:                 os.Getenv("ES_URL"),
		ES_USER:                os.Getenv("ES_USER"),
		ES_PASSWORD:            os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:              getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

// TokenTTL is the lifetime of issued customer tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TOKEN_EXPIRATION_HOURS) * time.Hour
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func InitDB(configuration *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER,
		configuration.DB_PASSWORD,
		configuration.DB_HOST,
		configuration.DB_PORT,
		configuration.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Mechanic{},
		&models.ServiceTicket{},
		&models.InventoryItem{},
		&models.TicketPart{},
	)
}
