package principals

import (
	"time"

	"github.com/google/uuid"
)

// Principal is any party that can hold roles, own tickets, or receive
// settlement proceeds. Role membership lives in the access-control store,
// not here.
type Principal struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
