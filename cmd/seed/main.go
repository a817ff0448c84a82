// Command seed prepares a fresh deployment: it prints the bcrypt hash for
// the admin password and upserts an empty portfolio document so first reads
// have a row to hit. Safe to re-run; an existing document is left alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"folio/internal/config"
	"folio/internal/repository/postgres"
)

func main() {
	password := flag.String("password", "", "admin password to hash (prints ADMIN_PASSWORD_HASH)")
	initDoc := flag.Bool("init-doc", false, "insert an empty portfolio document if none exists")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := config.NewLogger(cfg.Debug)

	if *password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	}

	if !*initDoc {
		return
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	// EnsureSchema also seeds the singleton document row when absent
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	logger.Info("portfolio document seeded", "table", tables.Portfolio)
}
