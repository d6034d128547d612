package main

import (
	"fmt"
	"log"
	"os"

	"ticketforge/internal/accesscontrol"
	"ticketforge/internal/pausegate"
	"ticketforge/internal/principals"
	"ticketforge/internal/shared/config"
	"ticketforge/internal/shared/database"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting TicketForge Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Root admin is ready.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	gormDB := s.db.GetPostgreSQL()

	tables := []string{
		"balances",
		"resale_listings",
		"tickets",
		"events",
		"role_audit_entries",
		"role_grants",
		"pause_state",
		"principals",
	}

	for _, table := range tables {
		if err := gormDB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// SeedAll creates the root admin principal. The admin bootstraps every
// other role through the access-control API.
func (s *Seeder) SeedAll() error {
	gormDB := s.db.GetPostgreSQL()

	email := getenv("SEED_ADMIN_EMAIL", "admin@ticketforge.local")
	password := getenv("SEED_ADMIN_PASSWORD", "changeme123")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := principals.Principal{
		Name:     "Root Admin",
		Email:    email,
		Password: string(hashedPassword),
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create root admin: %w", err)
		}

		grants := []accesscontrol.RoleGrant{
			{Role: accesscontrol.RoleAdmin, PrincipalID: admin.ID, GrantedBy: admin.ID},
			{Role: accesscontrol.RoleOrganizer, PrincipalID: admin.ID, GrantedBy: admin.ID},
			{Role: accesscontrol.RoleMinter, PrincipalID: admin.ID, GrantedBy: admin.ID},
			{Role: accesscontrol.RolePauser, PrincipalID: admin.ID, GrantedBy: admin.ID},
		}
		if err := tx.Create(&grants).Error; err != nil {
			return fmt.Errorf("failed to grant bootstrap roles: %w", err)
		}

		for _, grant := range grants {
			audit := accesscontrol.RoleAuditEntry{
				Role:        grant.Role,
				PrincipalID: grant.PrincipalID,
				Action:      accesscontrol.AuditActionGranted,
				ActorID:     admin.ID,
			}
			if err := tx.Create(&audit).Error; err != nil {
				return fmt.Errorf("failed to record bootstrap audit: %w", err)
			}
		}

		state := pausegate.PauseState{ID: 1, Paused: false, ChangedBy: admin.ID}
		if err := tx.Create(&state).Error; err != nil {
			return fmt.Errorf("failed to initialize pause state: %w", err)
		}

		fmt.Printf("   👤 Root admin: %s\n", email)
		return nil
	})
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
