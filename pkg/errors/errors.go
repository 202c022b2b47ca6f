package errors

import "errors"

// Card and hand input.
var (
	ErrInvalidCard       = errors.New("invalid card")
	ErrInvalidHand       = errors.New("invalid hand")
	ErrDuplicateCard     = errors.New("duplicate card")
	ErrDeckTooSmall      = errors.New("deck too small")
	ErrInvalidJokerCount = errors.New("invalid joker count")
	ErrWildNotAllowed    = errors.New("wild card not allowed in variant")
)

// Variants and paytables.
var (
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrInvalidWager    = errors.New("invalid wager level")
	ErrUnknownCategory = errors.New("unknown hand category")
)

// Rounds and rooms.
var (
	ErrRoundNotFound    = errors.New("round not found")
	ErrRoundSettled     = errors.New("round already settled")
	ErrInvalidHoldMask  = errors.New("invalid hold mask")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrTooManyPlayers   = errors.New("too many players")
	ErrShowdownNotFound = errors.New("showdown not found")
)

// Players and credits.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidPlayerStatus = errors.New("invalid player status")
	ErrInvalidNickname     = errors.New("invalid nickname")
	ErrInvalidAmount       = errors.New("invalid credit amount")
)

// Operators.
var (
	ErrAdminNotFound        = errors.New("admin not found")
	ErrAdminDisabled        = errors.New("admin disabled")
	ErrInvalidAdminPassword = errors.New("invalid admin password")
)
