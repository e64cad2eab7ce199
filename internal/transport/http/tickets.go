package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arrieta/campus-tickets/internal/domain"
)

// TicketLister is the minimal interface needed to read a user's ledger.
type TicketLister interface {
	ListTickets(ctx context.Context, userID string) ([]domain.Ticket, error)
}

// HandleListTickets returns a user's tickets, newest purchase first.
func HandleListTickets(svc TicketLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tickets, err := svc.ListTickets(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]ticketResponse, 0, len(tickets))
		for _, t := range tickets {
			resp = append(resp, ticketResponse{
				EventID:      t.EventID,
				EventTitle:   t.EventTitle,
				EventDate:    t.EventDate,
				Location:     t.Location,
				Tier:         t.Tier,
				Price:        t.Price,
				PurchaseDate: t.PurchaseDate,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
