package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints the ledger's concurrency model
// relies on; AutoMigrate alone does not create them.
func MigrateConstraints(db *gorm.DB) error {
	// One grant per (role, principal) pair
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_role_per_principal
		ON role_grants (role, principal_id);
	`).Error
	if err != nil {
		return err
	}

	// At most one active resale listing per ticket
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_listing_per_ticket
		ON resale_listings (ticket_id);
	`).Error
	if err != nil {
		return err
	}

	// Event-scoped ticket enumeration
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_event_id
		ON tickets (event_id);
	`).Error
	if err != nil {
		return err
	}

	// One settlement balance row per principal
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_balance_per_principal
		ON balances (principal_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
