package main

import (
	"context"
	"flag"
	"log"
	"time"

	"launchboard/internal/config"
	"launchboard/internal/database/migration"
	dbpostgres "launchboard/internal/database/postgres"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing V<version>__<name>.sql files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := (migration.Runner{Dir: *dir}).Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("migrations applied")
}
