package events

import "time"

type CreateEventRequest struct {
	Name           string    `json:"name" binding:"required,min=1,max=255"`
	MetadataRef    string    `json:"metadata_ref" binding:"max=500"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	RoyaltyBps     int64     `json:"royalty_bps" binding:"min=0"`
	MinResalePrice int64     `json:"min_resale_price" binding:"min=0"`
	MaxResalePrice int64     `json:"max_resale_price" binding:"min=0"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	MetadataRef *string    `json:"metadata_ref" binding:"omitempty,max=500"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

type SetEventStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}
