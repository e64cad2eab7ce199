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

// Purchaser is the minimal interface needed to sell a ticket.
type Purchaser interface {
	Purchase(ctx context.Context, in app.PurchaseInput) (domain.Ticket, error)
}

// HandlePurchase sells one unit of a tier to a user. Sold-out and
// not-found outcomes are normal responses, not opaque failures, so the UI
// can branch on the code field.
func HandlePurchase(svc Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purchaseRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, codeUserRequired, domain.ErrUserRequired.Error())
			return
		}
		if req.Tier == "" {
			writeError(w, http.StatusBadRequest, codeTierNameRequired, domain.ErrTierNameRequired.Error())
			return
		}

		ticket, err := svc.Purchase(r.Context(), app.PurchaseInput{
			EventID:  chi.URLParam(r, "id"),
			TierName: req.Tier,
			UserID:   req.UserID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := ticketResponse{
			EventID:      ticket.EventID,
			EventTitle:   ticket.EventTitle,
			EventDate:    ticket.EventDate,
			Location:     ticket.Location,
			Tier:         ticket.Tier,
			Price:        ticket.Price,
			PurchaseDate: ticket.PurchaseDate,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type purchaseRequest struct {
	Tier   string `json:"tier"`
	UserID string `json:"user_id"`
}

type ticketResponse struct {
	EventID      string    `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	EventDate    time.Time `json:"event_date"`
	Location     string    `json:"location"`
	Tier         string    `json:"tier"`
	Price        float64   `json:"price"`
	PurchaseDate time.Time `json:"purchase_date"`
}
