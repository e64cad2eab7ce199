package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arrieta/campus-tickets/internal/domain"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// EventService handles event authoring and reads. Authoring writes whole
// event documents and is not serialized against the purchase path: edits
// merge the current sold counts by tier name so a stale editor cannot
// clobber sales, but the read-merge-write itself is last-writer-wins.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

type TierInput struct {
	Name  string
	Price float64
	Total int
}

type EventInput struct {
	Title       string
	Date        *time.Time
	Location    string
	Description string
	ImageURL    string
	Tiers       []TierInput
}

const defaultTierName = "General"
const defaultTierTotal = 100

func (in EventInput) validate() error {
	if in.Title == "" {
		return domain.ErrTitleRequired
	}
	if in.Location == "" {
		return domain.ErrLocationRequired
	}
	if in.Date == nil {
		return domain.ErrDateRequired
	}
	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, in EventInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	tiers := newTiers(in.Tiers)
	if len(tiers) == 0 {
		tiers = []domain.TicketTier{{Name: defaultTierName, Total: defaultTierTotal}}
	}
	if err := domain.ValidateTiers(tiers); err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Date:        *in.Date,
		Location:    in.Location,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Tiers:       tiers,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// UpdateEvent replaces the whole event document. Tiers that keep their name
// keep their current sold count; renamed or new tiers start at zero.
func (s *EventService) UpdateEvent(ctx context.Context, id string, in EventInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	current, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	tiers := newTiers(in.Tiers)
	if err := domain.ValidateTiers(tiers); err != nil {
		return domain.Event{}, err
	}
	for i, t := range tiers {
		if prev, ok := current.FindTier(t.Name); ok {
			tiers[i].Sold = prev.Sold
		}
		// Shrinking total below sold would break the inventory invariant.
		if tiers[i].Total < tiers[i].Sold {
			return domain.Event{}, domain.ErrInvalidCapacity
		}
	}

	event := domain.Event{
		ID:          id,
		Title:       in.Title,
		Date:        *in.Date,
		Location:    in.Location,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Tiers:       tiers,
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	return s.repo.DeleteEvent(ctx, id)
}

func newTiers(inputs []TierInput) []domain.TicketTier {
	tiers := make([]domain.TicketTier, 0, len(inputs))
	for _, t := range inputs {
		tiers = append(tiers, domain.TicketTier{
			Name:  t.Name,
			Price: t.Price,
			Total: t.Total,
		})
	}
	return tiers
}
