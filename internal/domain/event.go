package domain

import "time"

// Event is a ticketed event with its tier inventory embedded. Tiers are an
// ordered list (display order); tier identity within an event is the name.
type Event struct {
	ID          string
	Title       string
	Date        time.Time
	Location    string
	Description string
	ImageURL    string
	Tiers       []TicketTier
}

// TicketTier is a sellable capacity bucket inside an event. Sold only moves
// up, and 0 <= Sold <= Total must hold after every committed write.
type TicketTier struct {
	Name  string
	Price float64
	Total int
	Sold  int
}

// Remaining reports how many units are still sellable.
func (t TicketTier) Remaining() int {
	return t.Total - t.Sold
}

// FindTier returns the tier with the given name, or false when absent.
func (e Event) FindTier(name string) (TicketTier, bool) {
	for _, t := range e.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return TicketTier{}, false
}

// ValidateTiers checks a tier list for authoring: non-empty unique names,
// positive capacity, non-negative price, and Sold within bounds.
func ValidateTiers(tiers []TicketTier) error {
	seen := make(map[string]struct{}, len(tiers))
	for _, t := range tiers {
		if t.Name == "" {
			return ErrTierNameRequired
		}
		if _, dup := seen[t.Name]; dup {
			return ErrDuplicateTierName
		}
		seen[t.Name] = struct{}{}
		if t.Total <= 0 {
			return ErrInvalidCapacity
		}
		if t.Price < 0 {
			return ErrInvalidPrice
		}
		if t.Sold < 0 || t.Sold > t.Total {
			return ErrMalformedTiers
		}
	}
	return nil
}
