package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arrieta/campus-tickets/internal/domain"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// PutTicket upserts the ledger row for (user, event, tier). A repeat
// purchase of the same tier by the same user overwrites the earlier entry.
func (r *TicketRepository) PutTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
INSERT INTO tickets (user_id, event_id, tier_name, event_title, event_date, location, price, purchase_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id, event_id, tier_name)
DO UPDATE SET event_title = EXCLUDED.event_title,
              event_date = EXCLUDED.event_date,
              location = EXCLUDED.location,
              price = EXCLUDED.price,
              purchase_date = EXCLUDED.purchase_date`

	_, err := r.exec(ctx, stmt,
		ticket.UserID,
		ticket.EventID,
		ticket.Tier,
		ticket.EventTitle,
		ticket.EventDate,
		ticket.Location,
		ticket.Price,
		ticket.PurchaseDate,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("put ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) ListTickets(ctx context.Context, userID string) ([]domain.Ticket, error) {
	const query = `
SELECT user_id, event_id, tier_name, event_title, event_date, location, price, purchase_date
FROM tickets
WHERE user_id = $1
ORDER BY purchase_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		err := rows.Scan(
			&t.UserID,
			&t.EventID,
			&t.Tier,
			&t.EventTitle,
			&t.EventDate,
			&t.Location,
			&t.Price,
			&t.PurchaseDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tickets: %w", rows.Err())
	}
	return tickets, nil
}

// CountTickets reports ledger entries for one (event, tier) across all
// users. Used by tests to check the ledger against the tier's sold count.
func (r *TicketRepository) CountTickets(ctx context.Context, eventID, tierName string) (int, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE event_id = $1 AND tier_name = $2`

	var n int
	if err := r.pool.QueryRow(ctx, query, eventID, tierName).Scan(&n); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return n, nil
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}
