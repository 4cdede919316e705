package main

import (
	"context"
	"log"
	"os"

	"learnhub/config"
	"learnhub/database"
	"learnhub/services/catalog"
)

// Seeds courses, modules and classes from a CSV for local development.
func main() {
	path := "catalog.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	stats, err := catalog.ImportCSV(context.Background(), database.Database.Db, file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Courses created: %d", stats.Courses)
	log.Printf("Modules created: %d", stats.Modules)
	log.Printf("Classes created: %d", stats.Classes)
	log.Printf("Skipped rows: %d", stats.Skipped)
}
