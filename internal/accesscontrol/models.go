package accesscontrol

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named capability a principal can hold
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleMinter    Role = "MINTER"
	RolePauser    Role = "PAUSER"
)

// AllRoles lists every role the ledger recognizes
var AllRoles = []Role{RoleAdmin, RoleOrganizer, RoleMinter, RolePauser}

// IsValid reports whether r is one of the recognized roles
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// RoleGrant records that a principal currently holds a role
type RoleGrant struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Role        Role      `json:"role" gorm:"type:varchar(32);not null;index"`
	PrincipalID uuid.UUID `json:"principal_id" gorm:"type:uuid;not null;index"`
	GrantedBy   uuid.UUID `json:"granted_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (RoleGrant) TableName() string {
	return "role_grants"
}

// RoleAuditEntry is an append-only record of a role change
type RoleAuditEntry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Role        Role      `json:"role" gorm:"type:varchar(32);not null"`
	PrincipalID uuid.UUID `json:"principal_id" gorm:"type:uuid;not null;index"`
	Action      string    `json:"action" gorm:"type:varchar(16);not null"`
	ActorID     uuid.UUID `json:"actor_id" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (RoleAuditEntry) TableName() string {
	return "role_audit_entries"
}

const (
	AuditActionGranted = "GRANTED"
	AuditActionRevoked = "REVOKED"
)
