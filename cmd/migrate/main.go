package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/ridgeline-exteriors/deal-api/internal/config"
)

const usage = "usage: migrate <up|down|status|version|create NAME>"

// defaultMigrationsDir is relative to the repo root; override with
// MIGRATIONS_DIR when running from elsewhere.
const defaultMigrationsDir = "./migrations"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = defaultMigrationsDir
	}

	return dispatch(db, dir, args[0], args[1:])
}

func dispatch(db *sql.DB, dir, command string, rest []string) error {
	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("up failed: %w", err)
		}
		fmt.Println("Migrations applied")
		return nil

	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("down failed: %w", err)
		}
		fmt.Println("Rolled back one migration")
		return nil

	case "status":
		return goose.Status(db, dir)

	case "version":
		return goose.Version(db, dir)

	case "create":
		if len(rest) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		if err := goose.Create(db, dir, rest[0], "sql"); err != nil {
			return fmt.Errorf("create failed: %w", err)
		}
		fmt.Printf("Migration created: %s\n", rest[0])
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}
