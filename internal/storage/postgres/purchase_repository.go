package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arrieta/campus-tickets/internal/domain"
)

// PurchaseRepository bundles the reads and writes the purchase engine needs
// inside one serializable transaction. Conflicting commits against the same
// event row surface as domain.ErrConflict from InTx.
type PurchaseRepository struct {
	events  *EventRepository
	tickets *TicketRepository
	pool    *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{
		events:  NewEventRepository(pool),
		tickets: NewTicketRepository(pool),
		pool:    pool,
	}
}

func (r *PurchaseRepository) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

func (r *PurchaseRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	return r.events.GetEvent(ctx, id)
}

func (r *PurchaseRepository) ReplaceTiers(ctx context.Context, eventID string, tiers []domain.TicketTier) error {
	return r.events.ReplaceTiers(ctx, eventID, tiers)
}

func (r *PurchaseRepository) PutTicket(ctx context.Context, ticket domain.Ticket) error {
	return r.tickets.PutTicket(ctx, ticket)
}
