package tickets

import (
	"testing"
	"time"

	"ticketforge/internal/events"
)

func TestIsValidAt(t *testing.T) {
	base := time.Date(2026, time.June, 1, 18, 0, 0, 0, time.UTC)

	event := &events.Event{ID: 1, Active: true, StartTime: base, EndTime: base.Add(6 * time.Hour)}
	inactive := &events.Event{ID: 2, Active: false, StartTime: base, EndTime: base.Add(6 * time.Hour)}

	ticket := &Ticket{
		ID:         1,
		EventID:    1,
		ValidFrom:  base,
		ValidUntil: base.Add(4 * time.Hour),
	}

	tests := []struct {
		name  string
		event *events.Event
		at    time.Time
		want  bool
	}{
		{"inside the window", event, base.Add(time.Hour), true},
		{"exactly at valid-from", event, base, true},
		{"just before valid-from", event, base.Add(-time.Second), false},
		{"exactly at valid-until", event, base.Add(4 * time.Hour), false},
		{"after valid-until", event, base.Add(5 * time.Hour), false},
		{"inactive event invalidates", inactive, base.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidAt(ticket, tt.event, tt.at); got != tt.want {
				t.Fatalf("IsValidAt = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("nil inputs are invalid", func(t *testing.T) {
		if IsValidAt(nil, event, base) {
			t.Fatal("nil ticket must be invalid")
		}
		if IsValidAt(ticket, nil, base) {
			t.Fatal("nil event must be invalid")
		}
	})
}
