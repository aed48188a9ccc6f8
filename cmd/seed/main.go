package main

import (
	"context"
	"log"

	"clubhub/internal/config"
	"clubhub/internal/db"
	"clubhub/internal/model"
	"clubhub/internal/repository"
	"clubhub/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Club{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	clubRepo := repository.NewClubRepository(gormDB)
	subRepo := repository.NewSubscriptionRepository(gormDB)
	clubService := service.NewClubService(clubRepo, subRepo)

	seeded, err := clubService.SeedDefaults(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed clubs: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - New clubs created: %d", seeded)
}
