package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/arrieta/campus-tickets/internal/domain"
	"github.com/arrieta/campus-tickets/internal/testutil"
)

func TestTicketRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTicketRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	const eventID = "7b4e9d0a-1f7c-4f33-9a51-0a2d74c7b201"

	entry := func(user, tier string, at time.Time) domain.Ticket {
		return domain.Ticket{
			UserID:       user,
			EventID:      eventID,
			EventTitle:   "Spring Concert",
			EventDate:    base.AddDate(0, 3, 0),
			Location:     "Quad",
			Tier:         tier,
			Price:        20,
			PurchaseDate: at,
		}
	}

	t.Run("ListTickets orders newest first", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		for i, tier := range []string{"General", "VIP", "Balcony"} {
			if err := repo.PutTicket(ctx, entry("user-1", tier, base.Add(time.Duration(i)*time.Hour))); err != nil {
				t.Fatalf("put ticket: %v", err)
			}
		}
		if err := repo.PutTicket(ctx, entry("user-2", "General", base)); err != nil {
			t.Fatalf("put ticket: %v", err)
		}

		got, err := repo.ListTickets(ctx, "user-1")
		if err != nil {
			t.Fatalf("list tickets: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 tickets, got %d", len(got))
		}
		if got[0].Tier != "Balcony" || got[2].Tier != "General" {
			t.Fatalf("unexpected order: %+v", got)
		}
	})

	t.Run("PutTicket upserts on the (user, event, tier) key", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := repo.PutTicket(ctx, entry("user-1", "General", base)); err != nil {
			t.Fatalf("put ticket: %v", err)
		}
		replacement := entry("user-1", "General", base.Add(48*time.Hour))
		replacement.Price = 25
		if err := repo.PutTicket(ctx, replacement); err != nil {
			t.Fatalf("put ticket again: %v", err)
		}

		got, err := repo.ListTickets(ctx, "user-1")
		if err != nil {
			t.Fatalf("list tickets: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 ticket, got %d", len(got))
		}
		if got[0].Price != 25 || !got[0].PurchaseDate.Equal(base.Add(48*time.Hour)) {
			t.Fatalf("expected overwritten entry, got %+v", got[0])
		}
	})

	t.Run("CountTickets spans users", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		for _, user := range []string{"user-1", "user-2", "user-3"} {
			if err := repo.PutTicket(ctx, entry(user, "General", base)); err != nil {
				t.Fatalf("put ticket: %v", err)
			}
		}
		count, err := repo.CountTickets(ctx, eventID, "General")
		if err != nil {
			t.Fatalf("count tickets: %v", err)
		}
		if count != 3 {
			t.Fatalf("expected 3, got %d", count)
		}
	})
}
