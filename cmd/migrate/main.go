package main

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/ollanpharmacy/pharmacy-api/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// golang-migrate selects the driver by URL scheme; the pgx/v5 driver
	// registers as pgx5.
	dsn := strings.Replace(cfg.PostgresDSN, "postgres://", "pgx5://", 1)
	src := "file://migrations"
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		src = "file://" + v
	}

	m, err := migrate.New(src, dsn)
	if err != nil {
		log.Fatalf("migrate init: %v", err)
	}
	defer m.Close()

	dir := "up"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	switch dir {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatalf("usage: migrate [up|down]")
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate %s: %v", dir, err)
	}
	log.Printf("migrations %s: done", dir)
}
