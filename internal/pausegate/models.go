package pausegate

import (
	"time"

	"github.com/google/uuid"
)

// PauseState is the single persisted row gating ledger mutations
type PauseState struct {
	ID        int       `json:"-" gorm:"primaryKey"`
	Paused    bool      `json:"paused" gorm:"not null;default:false"`
	ChangedBy uuid.UUID `json:"changed_by" gorm:"type:uuid"`
	ChangedAt time.Time `json:"changed_at"`
}

func (PauseState) TableName() string {
	return "pause_state"
}

type PauseStatusResponse struct {
	Paused    bool      `json:"paused"`
	ChangedBy uuid.UUID `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}
