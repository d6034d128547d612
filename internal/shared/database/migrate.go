package database

import (
	"ticketforge/internal/accesscontrol"
	"ticketforge/internal/events"
	"ticketforge/internal/marketplace"
	"ticketforge/internal/pausegate"
	"ticketforge/internal/principals"
	"ticketforge/internal/tickets"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults depend on this extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&principals.Principal{},
		&accesscontrol.RoleGrant{},
		&accesscontrol.RoleAuditEntry{},
		&pausegate.PauseState{},
		&events.Event{},
		&tickets.Ticket{},
		&marketplace.ResaleListing{},
		&marketplace.Balance{},
	)
}
