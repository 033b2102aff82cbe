package match

import "context"

// MatchStore organizes open padel matches that members can request to join.
type MatchStore interface {
	// CreateMatch opens a match with the creator as its first participant.
	CreateMatch(ctx context.Context, m NewMatch) (*Match, error)
	GetMatch(ctx context.Context, id string) (*Match, error)
	ListMatches(ctx context.Context) ([]Match, error)
	// ListMatchesByPlayer returns the matches a player created, joined or
	// asked to join.
	ListMatchesByPlayer(ctx context.Context, username string) ([]Match, error)
	// JoinMatch records a join request and claims a spot for it. The spot is
	// claimed with a single conditional update, so a match never holds more
	// players and reservations than it has spots.
	JoinMatch(ctx context.Context, id, username string) (*Match, error)
	// ConfirmJoin turns a pending join request into a participant.
	ConfirmJoin(ctx context.Context, id, username string) (*Match, error)
	// ReserveSpot holds (reserve=true) or frees a spot by index, for a player
	// arranged outside the app.
	ReserveSpot(ctx context.Context, id string, spotIndex int, reserve bool) (*Match, error)
	DeleteMatch(ctx context.Context, id string) error
}

// UserDirectory is the part of the user store needed to check players.
type UserDirectory interface {
	Exists(ctx context.Context, username string) (bool, error)
}
