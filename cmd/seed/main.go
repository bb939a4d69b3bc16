// Command main runs the database seeder for Clipstream.
package main

import (
	"flag"
	"log"

	"clipstream/internal/config"
	"clipstream/internal/database"
	"clipstream/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numVideos := flag.Int("videos", 80, "Number of videos to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (fast, dev only)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d videos, clean=%v\n", *numUsers, *numVideos, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:   *numUsers,
		NumVideos:  *numVideos,
		SkipBcrypt: *skipBcrypt,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedDemo()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Done. Seeded %d users; everyone's password is password123", len(users))
}
