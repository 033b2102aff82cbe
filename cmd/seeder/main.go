package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/trainer"
	"github.com/mauv0809/courtside/internal/user"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	} else {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

var seedTrainers = []trainer.NewTrainer{
	{Username: "carla", Name: "Carla Ruiz", Specialty: "Bandeja and vibora", Bio: "Former regional champion."},
	{Username: "mikkel", Name: "Mikkel Holm", Specialty: "Beginners", Bio: "Patient coach for first-timers."},
	{Username: "sofia", Name: "Sofia Lind", Specialty: "Match tactics"},
}

var seedSlots = []string{"08:00", "09:00", "10:00", "17:00", "18:00", "19:00"}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	users := user.New(db)
	trainers := trainer.New(db, users)

	for _, name := range []string{"member-1", "member-2", "member-3"} {
		if err := ensureUser(ctx, users, name, user.RoleUser); err != nil {
			log.Fatalf("Failed to seed user %s: %s", name, err)
		}
	}

	startTime := time.Now()
	today := trainer.Day(time.Now())
	for _, nt := range seedTrainers {
		if err := ensureUser(ctx, users, nt.Username, user.RoleTrainer); err != nil {
			log.Fatalf("Failed to seed user %s: %s", nt.Username, err)
		}

		nt.Availability = nil
		for d := 0; d < 7; d++ {
			nt.Availability = append(nt.Availability, trainer.SlotsForDate{Date: today.AddDate(0, 0, d), TimeSlots: seedSlots})
		}

		if _, err := trainers.CreateTrainer(ctx, nt); err != nil {
			if !errors.Is(err, apperr.ErrConflict) {
				log.Fatalf("Failed to seed trainer %s: %s", nt.Username, err)
			}
			// Already seeded; top up the coming week instead.
			for _, day := range nt.Availability {
				if _, err := trainers.AddAvailability(ctx, nt.Username, day.Date, day.TimeSlots); err != nil {
					log.Fatalf("Failed to add availability for %s: %s", nt.Username, err)
				}
			}
		}
		log.Info("Seeded trainer", "username", nt.Username, "days", len(nt.Availability))
	}

	log.Info("Seeding finished", "trainers", len(seedTrainers), "duration", time.Since(startTime))
}

func ensureUser(ctx context.Context, users user.UserStore, username string, role user.Role) error {
	_, err := users.CreateUser(ctx, username, role)
	if err != nil && !errors.Is(err, apperr.ErrConflict) {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
