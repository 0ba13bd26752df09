package config

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port         string
	MirrorDriver string // none | postgres | sqlite | s3

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SQLitePath string

	S3Bucket string
	S3Region string
	S3Prefix string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	return Config{
		Port:         getenv("PORT", "8080"),
		MirrorDriver: getenv("MIRROR_DRIVER", "none"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       getenv("DB_USER", "postgres"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       getenv("DB_NAME", "preptrack"),
		SQLitePath:   getenv("SQLITE_PATH", "preptrack.db"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Region:     getenv("S3_REGION", os.Getenv("AWS_REGION")),
		S3Prefix:     os.Getenv("S3_PREFIX"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects the mirror database for the configured driver. Schema
// migration happens in the sink, not here.
func OpenDB(cfg Config) (*gorm.DB, error) {
	switch cfg.MirrorDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	return nil, fmt.Errorf("mirror driver %q has no database", cfg.MirrorDriver)
}
