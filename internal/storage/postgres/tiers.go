package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/arrieta/campus-tickets/internal/domain"
)

// tierDoc is the persisted shape of one tier inside the events.ticket_tiers
// JSONB column. Field names match the stored documents.
type tierDoc struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Total int     `json:"total"`
	Sold  int     `json:"sold"`
}

func encodeTiers(tiers []domain.TicketTier) ([]byte, error) {
	docs := make([]tierDoc, 0, len(tiers))
	for _, t := range tiers {
		docs = append(docs, tierDoc(t))
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode tiers: %w", err)
	}
	return raw, nil
}

// decodeTiers validates at the storage boundary: a row whose tier document
// does not decode into a well-formed tier list is rejected as
// domain.ErrMalformedTiers rather than propagated upward untyped.
func decodeTiers(raw []byte) ([]domain.TicketTier, error) {
	var docs []tierDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, domain.ErrMalformedTiers
	}
	tiers := make([]domain.TicketTier, 0, len(docs))
	for _, d := range docs {
		tiers = append(tiers, domain.TicketTier(d))
	}
	if err := domain.ValidateTiers(tiers); err != nil {
		return nil, domain.ErrMalformedTiers
	}
	return tiers, nil
}
