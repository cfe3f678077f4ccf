// Command main runs the database seeder for Yatube.
package main

import (
	"flag"
	"log"

	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a built-in preset (minimal, demo, mega)")
	presetFile := flag.String("preset-file", "", "Apply a preset from a YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	})

	switch {
	case *presetFile != "":
		p, err := seed.LoadPresetFile(*presetFile)
		if err != nil {
			log.Fatalf("Preset file failed: %v", err)
		}
		log.Printf("Applying preset %q from %s", p.Name, *presetFile)
		if err := seeder.ApplyPreset(p); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	case *preset != "":
		p, ok := seed.LookupPreset(*preset)
		if !ok {
			log.Fatalf("Unknown preset %q", *preset)
		}
		log.Printf("Applying preset %q (ignoring other flags)", *preset)
		if err := seeder.ApplyPreset(p); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	default:
		if err := seeder.Run(); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	log.Printf("All test users have the password: %s", seed.DemoPassword)
}
