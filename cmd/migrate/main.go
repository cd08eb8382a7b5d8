// cmd/migrate/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/db"
	"github.com/mktops/campaign-clarity/internal/logger"
)

const schemaDir = "schema"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file found, relying on OS environment variables")
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Println("failed to build logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Only the database settings matter here; CRM and generation
	// credentials are not needed to apply DDL.
	conn, err := db.Open(
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_NAME", "campaign_clarity"),
	)
	if err != nil {
		log.Fatal("failed to connect to archive database", zap.Error(err))
	}
	defer conn.Close()

	files, err := filepath.Glob(filepath.Join(schemaDir, "*.sql"))
	if err != nil {
		log.Fatal("failed to list schema files", zap.Error(err))
	}
	if len(files) == 0 {
		log.Fatal("no schema files found", zap.String("dir", schemaDir))
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatal("failed to read schema file", zap.String("file", file), zap.Error(err))
		}
		if _, err := conn.Exec(string(content)); err != nil {
			log.Fatal("failed to apply schema file", zap.String("file", file), zap.Error(err))
		}
		log.Info("applied schema file", zap.String("file", file))
	}

	fmt.Println("✅ Schema migration completed")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
