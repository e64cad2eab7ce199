package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arrieta/campus-tickets/internal/app"
	"github.com/arrieta/campus-tickets/internal/domain"
)

// Authoring is the minimal interface needed for the admin event surface.
type Authoring interface {
	CreateEvent(ctx context.Context, in app.EventInput) (domain.Event, error)
	UpdateEvent(ctx context.Context, id string, in app.EventInput) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// HandleAdminCreateEvent creates an event from a full payload. Tier sold
// counts are always initialized to zero regardless of the payload.
func HandleAdminCreateEvent(svc Authoring) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeEventInput(w, r)
		if !ok {
			return
		}
		event, err := svc.CreateEvent(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	}
}

// HandleAdminUpdateEvent replaces an event document. Sold counts carry over
// for tiers that keep their name; this write is not coordinated with
// concurrent purchases, so admin UIs should re-fetch before editing.
func HandleAdminUpdateEvent(svc Authoring) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeEventInput(w, r)
		if !ok {
			return
		}
		event, err := svc.UpdateEvent(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	}
}

func HandleAdminListEvents(svc Authoring) http.HandlerFunc {
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

func HandleAdminDeleteEvent(svc Authoring) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type eventRequest struct {
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	TicketTiers []tierRequest `json:"ticket_tiers"`
}

type tierRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Total int     `json:"total"`
}

func decodeEventInput(w http.ResponseWriter, r *http.Request) (app.EventInput, bool) {
	var req eventRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return app.EventInput{}, false
	}

	in := app.EventInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid date format, want RFC3339")
			return app.EventInput{}, false
		}
		in.Date = &parsed
	}
	for _, t := range req.TicketTiers {
		in.Tiers = append(in.Tiers, app.TierInput{
			Name:  t.Name,
			Price: t.Price,
			Total: t.Total,
		})
	}
	return in, true
}
