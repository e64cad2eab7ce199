package app

import (
	"context"
	"testing"
	"time"

	"github.com/arrieta/campus-tickets/internal/domain"
)

func TestEventService_CreateEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 2, 0)

	newSvc := func() (*EventService, *fakeEventRepo) {
		repo := newFakeEventRepo()
		return NewEventService(repo), repo
	}

	t.Run("creates event with tiers, sold forced to zero", func(t *testing.T) {
		svc, repo := newSvc()

		event, err := svc.CreateEvent(context.Background(), EventInput{
			Title:    "Hack Night",
			Date:     &date,
			Location: "Lab 3",
			Tiers: []TierInput{
				{Name: "Early Bird", Price: 5, Total: 30},
				{Name: "General", Price: 10, Total: 70},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if event.ID == "" {
			t.Fatalf("expected id to be assigned")
		}
		if len(event.Tiers) != 2 {
			t.Fatalf("expected 2 tiers, got %d", len(event.Tiers))
		}
		for _, tier := range event.Tiers {
			if tier.Sold != 0 {
				t.Fatalf("expected sold 0 on new tier, got %d", tier.Sold)
			}
		}
		if len(repo.events) != 1 {
			t.Fatalf("expected 1 stored event, got %d", len(repo.events))
		}
	})

	t.Run("defaults a General tier when none supplied", func(t *testing.T) {
		svc, _ := newSvc()

		event, err := svc.CreateEvent(context.Background(), EventInput{
			Title:    "Open Mic",
			Date:     &date,
			Location: "Cafe",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(event.Tiers) != 1 || event.Tiers[0].Name != "General" {
			t.Fatalf("expected default General tier, got %+v", event.Tiers)
		}
		if event.Tiers[0].Total <= 0 {
			t.Fatalf("expected positive default capacity, got %d", event.Tiers[0].Total)
		}
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		svc, _ := newSvc()
		cases := []struct {
			name string
			in   EventInput
			want error
		}{
			{"missing title", EventInput{Date: &date, Location: "x"}, domain.ErrTitleRequired},
			{"missing date", EventInput{Title: "t", Location: "x"}, domain.ErrDateRequired},
			{"missing location", EventInput{Title: "t", Date: &date}, domain.ErrLocationRequired},
			{
				"duplicate tier names",
				EventInput{Title: "t", Date: &date, Location: "x", Tiers: []TierInput{
					{Name: "General", Total: 10}, {Name: "General", Total: 5},
				}},
				domain.ErrDuplicateTierName,
			},
			{
				"zero capacity",
				EventInput{Title: "t", Date: &date, Location: "x", Tiers: []TierInput{{Name: "General"}}},
				domain.ErrInvalidCapacity,
			},
			{
				"negative price",
				EventInput{Title: "t", Date: &date, Location: "x", Tiers: []TierInput{{Name: "General", Total: 5, Price: -1}}},
				domain.ErrInvalidPrice,
			},
			{
				"unnamed tier",
				EventInput{Title: "t", Date: &date, Location: "x", Tiers: []TierInput{{Total: 5}}},
				domain.ErrTierNameRequired,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := svc.CreateEvent(context.Background(), tc.in); err != tc.want {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 2, 0)

	seed := func(repo *fakeEventRepo) domain.Event {
		event := domain.Event{
			ID:       "event-1",
			Title:    "Hack Night",
			Date:     date,
			Location: "Lab 3",
			Tiers: []domain.TicketTier{
				{Name: "Early Bird", Price: 5, Total: 30, Sold: 12},
				{Name: "General", Price: 10, Total: 70, Sold: 3},
			},
		}
		repo.events[event.ID] = event
		return event
	}

	t.Run("preserves sold counts for tiers that keep their name", func(t *testing.T) {
		repo := newFakeEventRepo()
		seed(repo)
		svc := NewEventService(repo)

		updated, err := svc.UpdateEvent(context.Background(), "event-1", EventInput{
			Title:    "Hack Night v2",
			Date:     &date,
			Location: "Lab 4",
			Tiers: []TierInput{
				{Name: "General", Price: 12, Total: 80},
				{Name: "VIP", Price: 40, Total: 10},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		general, ok := updated.FindTier("General")
		if !ok || general.Sold != 3 {
			t.Fatalf("expected General to keep sold 3, got %+v", general)
		}
		if general.Price != 12 || general.Total != 80 {
			t.Fatalf("expected General price/total updated, got %+v", general)
		}
		vip, ok := updated.FindTier("VIP")
		if !ok || vip.Sold != 0 {
			t.Fatalf("expected new VIP tier with sold 0, got %+v", vip)
		}
		if _, ok := updated.FindTier("Early Bird"); ok {
			t.Fatalf("expected Early Bird removed")
		}
	})

	t.Run("rejects shrinking capacity below sold", func(t *testing.T) {
		repo := newFakeEventRepo()
		seed(repo)
		svc := NewEventService(repo)

		_, err := svc.UpdateEvent(context.Background(), "event-1", EventInput{
			Title:    "Hack Night",
			Date:     &date,
			Location: "Lab 3",
			Tiers:    []TierInput{{Name: "Early Bird", Price: 5, Total: 10}},
		})
		if err != domain.ErrInvalidCapacity {
			t.Fatalf("expected ErrInvalidCapacity, got %v", err)
		}
	})

	t.Run("unknown event passes through not found", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo)

		_, err := svc.UpdateEvent(context.Background(), "missing", EventInput{
			Title:    "t",
			Date:     &date,
			Location: "x",
			Tiers:    []TierInput{{Name: "General", Total: 5}},
		})
		if err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})
}

type fakeEventRepo struct {
	events map[string]domain.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]domain.Event)}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event domain.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetEvent(_ context.Context, id string) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) ListEvents(_ context.Context) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}
