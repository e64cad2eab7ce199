package app

import (
	"context"
	"errors"
	"time"

	"github.com/arrieta/campus-tickets/internal/clock"
	"github.com/arrieta/campus-tickets/internal/domain"
)

// PurchaseRepository is the transactional storage contract the engine runs
// against. InTx must execute fn atomically with respect to other InTx calls
// touching the same event and return domain.ErrConflict when a concurrent
// commit invalidated this transaction's reads.
type PurchaseRepository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ReplaceTiers(ctx context.Context, eventID string, tiers []domain.TicketTier) error
	PutTicket(ctx context.Context, ticket domain.Ticket) error
}

// PurchaseService sells single ticket units. It is the only writer allowed
// to touch a tier's sold count, and it guarantees sold never exceeds total
// no matter how many buyers race for the same tier.
type PurchaseService struct {
	repo        PurchaseRepository
	clock       clock.Clock
	maxAttempts int
	backoff     time.Duration
}

const (
	defaultMaxAttempts = 5
	defaultBackoff     = 10 * time.Millisecond
)

func NewPurchaseService(repo PurchaseRepository, clk clock.Clock, opts ...PurchaseServiceOption) *PurchaseService {
	svc := &PurchaseService{
		repo:        repo,
		clock:       clk,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type PurchaseServiceOption func(*PurchaseService)

// WithMaxAttempts bounds how many times a conflicted purchase is retried.
func WithMaxAttempts(n int) PurchaseServiceOption {
	return func(s *PurchaseService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryBackoff sets the initial delay between attempts; it doubles on
// each further conflict.
func WithRetryBackoff(d time.Duration) PurchaseServiceOption {
	return func(s *PurchaseService) {
		if d >= 0 {
			s.backoff = d
		}
	}
}

type PurchaseInput struct {
	EventID  string
	TierName string
	UserID   string
}

// Purchase sells one unit of the named tier to the user. The decrement of
// the tier's remaining capacity and the ledger write commit atomically:
// either both are durable or neither is. Only conflicts with concurrent
// purchases are retried; ErrEventNotFound, ErrTierNotFound and ErrSoldOut
// are terminal, and each retry re-reads fresh state so exhausted capacity
// converges to ErrSoldOut rather than spinning.
func (s *PurchaseService) Purchase(ctx context.Context, in PurchaseInput) (domain.Ticket, error) {
	if in.UserID == "" {
		return domain.Ticket{}, domain.ErrUserRequired
	}
	if in.TierName == "" {
		return domain.Ticket{}, domain.ErrTierNotFound
	}

	backoff := s.backoff
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoff); err != nil {
				return domain.Ticket{}, err
			}
			backoff *= 2
		}

		ticket, err := s.attempt(ctx, in)
		if err == nil {
			return ticket, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return domain.Ticket{}, err
		}
	}

	// Retry budget spent on conflicts; the caller may safely try again.
	return domain.Ticket{}, domain.ErrUnavailable
}

func (s *PurchaseService) attempt(ctx context.Context, in PurchaseInput) (domain.Ticket, error) {
	var ticket domain.Ticket

	err := s.repo.InTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEvent(txCtx, in.EventID)
		if err != nil {
			return err
		}

		tierIdx := -1
		for i, t := range event.Tiers {
			if t.Name == in.TierName {
				tierIdx = i
				break
			}
		}
		if tierIdx < 0 {
			return domain.ErrTierNotFound
		}

		tier := event.Tiers[tierIdx]
		if tier.Sold >= tier.Total {
			return domain.ErrSoldOut
		}

		next := make([]domain.TicketTier, len(event.Tiers))
		copy(next, event.Tiers)
		next[tierIdx].Sold++

		if err := s.repo.ReplaceTiers(txCtx, in.EventID, next); err != nil {
			return err
		}

		ticket = domain.Ticket{
			UserID:       in.UserID,
			EventID:      event.ID,
			EventTitle:   event.Title,
			EventDate:    event.Date,
			Location:     event.Location,
			Tier:         tier.Name,
			Price:        tier.Price,
			PurchaseDate: s.clock.Now(),
		}
		return s.repo.PutTicket(txCtx, ticket)
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
