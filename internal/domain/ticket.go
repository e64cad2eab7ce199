package domain

import "time"

// Ticket is a ledger entry for one purchased unit. It is keyed by
// (user, event, tier): buying the same tier again overwrites the entry.
// Event fields are a snapshot taken at purchase time, so the ticket stays
// readable after the event is edited or deleted.
type Ticket struct {
	UserID       string
	EventID      string
	EventTitle   string
	EventDate    time.Time
	Location     string
	Tier         string
	Price        float64
	PurchaseDate time.Time
}
