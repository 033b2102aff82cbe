package match

import (
	"database/sql"
	"time"
)

const (
	DefaultTotalSpots = 4
	MinSpots          = 2
	MaxSpots          = 8
)

// Status is derived from how many spots are taken.
type Status string

const (
	StatusOpen Status = "open"
	StatusFull Status = "full"
)

// PlayerStatus is the state of a player's place in a match.
type PlayerStatus string

const (
	PlayerRequested PlayerStatus = "requested"
	PlayerJoined    PlayerStatus = "joined"
)

// Action names the change a MatchUpdated event describes.
type Action string

const (
	ActionJoinRequested Action = "join-requested"
	ActionJoinConfirmed Action = "join-confirmed"
)

type store struct {
	db    *sql.DB
	users UserDirectory
}

// Match is an open game looking for players. Participants, join requests and
// reserved spots together never exceed TotalSpots.
type Match struct {
	ID            string           `json:"id"`
	Username      string           `json:"username"` // creator
	Description   string           `json:"description"`
	Level         string           `json:"level"`
	Location      string           `json:"location"`
	MatchDateTime time.Time        `json:"matchDateTime"`
	EndTime       string           `json:"endTime"` // HH:MM
	TotalSpots    int              `json:"totalSpots"`
	Status        Status           `json:"status"`
	Participants  []string         `json:"participants"`
	JoinRequests  []string         `json:"joinRequests"`
	ReservedSpots []int            `json:"reservedSpots"`
	Teams         *TeamAssignments `json:"teams,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// TeamAssignments splits the participants of a full match into two sides.
type TeamAssignments struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

// NewMatch is the input to CreateMatch. TotalSpots defaults to
// DefaultTotalSpots.
type NewMatch struct {
	Username      string
	Description   string
	Level         string
	Location      string
	MatchDateTime time.Time
	EndTime       string
	TotalSpots    int
}

// MatchUpdated is published when players join a match.
type MatchUpdated struct {
	MatchID  string    `msgpack:"match_id"`
	Username string    `msgpack:"username"`
	Action   Action    `msgpack:"action"`
	Occurred time.Time `msgpack:"occurred"`
}
