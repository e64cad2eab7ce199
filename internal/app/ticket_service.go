package app

import (
	"context"

	"github.com/arrieta/campus-tickets/internal/domain"
)

type TicketRepository interface {
	ListTickets(ctx context.Context, userID string) ([]domain.Ticket, error)
}

// TicketService reads a user's purchase ledger. Writes happen only inside
// the purchase transaction.
type TicketService struct {
	repo TicketRepository
}

func NewTicketService(repo TicketRepository) *TicketService {
	return &TicketService{repo: repo}
}

func (s *TicketService) ListTickets(ctx context.Context, userID string) ([]domain.Ticket, error) {
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	return s.repo.ListTickets(ctx, userID)
}
