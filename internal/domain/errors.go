package domain

import "errors"

var (
	ErrDeckNotFound  = errors.New("deck not found")
	ErrDeckInUse     = errors.New("deck is used in recorded matches")
	ErrCardNotFound  = errors.New("card not found")
	ErrEventNotFound = errors.New("event not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchStarted  = errors.New("match has already started")
	ErrUserNotFound  = errors.New("user not found")
)

// ErrColorIdentityMissing indicates the coloridentity table is missing one of
// the 32 flag combinations. The table is seeded on startup, so hitting this
// is a data-integrity failure and the request must not swallow it.
var ErrColorIdentityMissing = errors.New("color identity combination missing from store")
