package domain

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrTierNotFound      = errors.New("ticket tier not found")
	ErrSoldOut           = errors.New("ticket tier sold out")
	ErrConflict          = errors.New("concurrent modification")
	ErrUnavailable       = errors.New("storage unavailable, retry later")
	ErrMalformedTiers    = errors.New("malformed ticket tier data")
	ErrTitleRequired     = errors.New("event title required")
	ErrDateRequired      = errors.New("event date required")
	ErrLocationRequired  = errors.New("event location required")
	ErrTierNameRequired  = errors.New("tier name required")
	ErrDuplicateTierName = errors.New("duplicate tier name")
	ErrInvalidCapacity   = errors.New("tier capacity must be positive")
	ErrInvalidPrice      = errors.New("tier price must not be negative")
	ErrUserRequired      = errors.New("user id required")
	ErrInvalidID         = errors.New("invalid id")
)
