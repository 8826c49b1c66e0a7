package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"visit-planner-service/internal/adapters/repositories"
	"visit-planner-service/internal/config"
	"visit-planner-service/internal/platform/db"
)

func main() {
	providersPath := flag.String("providers", "data/seeds/providers.json", "providers seed file")
	patientsPath := flag.String("patients", "data/seeds/patients.json", "patients seed file")
	seed := flag.Bool("seed", false, "seed demo data after initializing the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := initAndSeed(database, *seed, *providersPath, *patientsPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(database *sql.DB, seed bool, providersPath, patientsPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(database); err != nil {
		return err
	}
	log.Println("Schema ready.")

	if !seed {
		return nil
	}

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(database, providersPath, patientsPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
