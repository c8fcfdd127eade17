package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	Long:  `Seed the database with the admin account, departments and item categories.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"activity_log", "user_sessions", "assets", "inventory"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		var exists int
		err = db.Get(&exists, "SELECT 1 FROM users WHERE username = $1", "admin")
		if err == nil {
			fmt.Println("admin user already exists")
		} else {
			_, err = db.Exec(
				`INSERT INTO users (username, password, name, role, initials, is_active, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, true, now(), now())`,
				"admin", string(hash), "System Administrator", "Head Administrator", "SA")
			if err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user")
		}

		departments := []string{
			"Finance", "Human Resources", "Engineering Services",
			"Parks & Recreation", "Planning", "Waste Management", "ICT",
		}
		for _, name := range departments {
			if _, err := db.Exec(
				`INSERT INTO departments (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				log.Fatalf("failed to seed department %s: %v", name, err)
			}
		}
		fmt.Printf("Seeded %d departments\n", len(departments))

		categories := []string{
			"Stationery", "Cleaning Supplies", "IT Consumables",
			"Safety Equipment", "Tools", "Furniture",
		}
		for _, name := range categories {
			if _, err := db.Exec(
				`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				log.Fatalf("failed to seed category %s: %v", name, err)
			}
		}
		fmt.Printf("Seeded %d categories\n", len(categories))
	},
}
