package events

import (
	"time"

	"github.com/google/uuid"
)

// MaxRoyaltyBps caps the organizer royalty at 100%
const MaxRoyaltyBps = 10000

type Event struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Organizer   uuid.UUID `json:"organizer" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	MetadataRef string    `json:"metadata_ref" gorm:"size:500"`
	StartTime   time.Time `json:"start_time" gorm:"not null"`
	EndTime     time.Time `json:"end_time" gorm:"not null"`
	Active      bool      `json:"active" gorm:"not null;default:true"`

	// Resale policy, set at creation by the event organizer
	RoyaltyBps     int64 `json:"royalty_bps" gorm:"not null;default:0;check:royalty_bps >= 0 AND royalty_bps <= 10000"`
	MinResalePrice int64 `json:"min_resale_price" gorm:"not null;default:0;check:min_resale_price >= 0"`
	MaxResalePrice int64 `json:"max_resale_price" gorm:"not null;default:0;check:max_resale_price >= 0"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

type EventResponse struct {
	ID             uint64    `json:"id"`
	Organizer      string    `json:"organizer"`
	Name           string    `json:"name"`
	MetadataRef    string    `json:"metadata_ref"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Active         bool      `json:"active"`
	RoyaltyBps     int64     `json:"royalty_bps"`
	MinResalePrice int64     `json:"min_resale_price"`
	MaxResalePrice int64     `json:"max_resale_price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToEventResponse(event *Event) EventResponse {
	return EventResponse{
		ID:             event.ID,
		Organizer:      event.Organizer.String(),
		Name:           event.Name,
		MetadataRef:    event.MetadataRef,
		StartTime:      event.StartTime,
		EndTime:        event.EndTime,
		Active:         event.Active,
		RoyaltyBps:     event.RoyaltyBps,
		MinResalePrice: event.MinResalePrice,
		MaxResalePrice: event.MaxResalePrice,
		CreatedAt:      event.CreatedAt,
		UpdatedAt:      event.UpdatedAt,
	}
}

func ToEventResponses(list []Event) []EventResponse {
	responses := make([]EventResponse, len(list))
	for i := range list {
		responses[i] = ToEventResponse(&list[i])
	}
	return responses
}
