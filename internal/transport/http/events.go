package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arrieta/campus-tickets/internal/domain"
)

// EventReader is the minimal interface needed for public event browsing.
type EventReader interface {
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

// HandleListEvents returns the catalog ordered by event date.
func HandleListEvents(svc EventReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, toEventResponse(event))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleGetEvent returns one event with its tier availability.
func HandleGetEvent(svc EventReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	}
}

type tierResponse struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Total     int     `json:"total"`
	Sold      int     `json:"sold"`
	Remaining int     `json:"remaining"`
}

type eventResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Date        time.Time      `json:"date"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	TicketTiers []tierResponse `json:"ticket_tiers"`
}

func toEventResponse(event domain.Event) eventResponse {
	tiers := make([]tierResponse, 0, len(event.Tiers))
	for _, t := range event.Tiers {
		tiers = append(tiers, tierResponse{
			Name:      t.Name,
			Price:     t.Price,
			Total:     t.Total,
			Sold:      t.Sold,
			Remaining: t.Remaining(),
		})
	}
	return eventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Date:        event.Date,
		Location:    event.Location,
		Description: event.Description,
		ImageURL:    event.ImageURL,
		TicketTiers: tiers,
	}
}
