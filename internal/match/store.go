package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/outbox"
)

// New creates a MatchStore. Join activity is written to the outbox in the same
// transaction as the change.
func New(db *sql.DB, users UserDirectory) MatchStore {
	return &store{
		db:    db,
		users: users,
	}
}

func (s *store) CreateMatch(ctx context.Context, nm NewMatch) (*Match, error) {
	nm.Username = strings.TrimSpace(nm.Username)
	nm.Location = strings.TrimSpace(nm.Location)
	if nm.Username == "" || nm.Location == "" || nm.MatchDateTime.IsZero() {
		return nil, fmt.Errorf("%w: username, location and matchDateTime are required", apperr.ErrValidation)
	}
	if nm.TotalSpots == 0 {
		nm.TotalSpots = DefaultTotalSpots
	}
	if nm.TotalSpots < MinSpots || nm.TotalSpots > MaxSpots {
		return nil, fmt.Errorf("%w: totalSpots must be between %d and %d", apperr.ErrValidation, MinSpots, MaxSpots)
	}
	if err := s.requireUser(ctx, nm.Username); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := time.Now().UnixMilli()
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// The creator holds the first spot.
		_, err := tx.ExecContext(ctx, `
			INSERT INTO matches (id, username, description, level, location, match_date_time, end_time, total_spots, occupied, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
		`, id, nm.Username, nm.Description, nm.Level, nm.Location, nm.MatchDateTime.UnixMilli(),
			strings.TrimSpace(nm.EndTime), nm.TotalSpots, now)
		if err != nil {
			return apperr.Persistence("insert match", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO match_players (match_id, username, status, joined_at) VALUES (?, ?, ?, ?)
		`, id, nm.Username, string(PlayerJoined), now)
		if err != nil {
			return apperr.Persistence("insert match creator", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Info("Created match", "id", id, "creator", nm.Username, "location", nm.Location, "spots", nm.TotalSpots)
	return loadMatch(ctx, s.db, id)
}

func (s *store) GetMatch(ctx context.Context, id string) (*Match, error) {
	return loadMatch(ctx, s.db, id)
}

// ListMatches returns all matches, soonest first.
func (s *store) ListMatches(ctx context.Context) ([]Match, error) {
	return listMatches(ctx, s.db, `
		SELECT id FROM matches ORDER BY match_date_time, created_at
	`)
}

func (s *store) ListMatchesByPlayer(ctx context.Context, username string) ([]Match, error) {
	return listMatches(ctx, s.db, `
		SELECT m.id FROM matches m
		JOIN match_players p ON p.match_id = m.id
		WHERE p.username = ?
		ORDER BY m.match_date_time, m.created_at
	`, strings.TrimSpace(username))
}

func (s *store) JoinMatch(ctx context.Context, id, username string) (*Match, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperr.ErrValidation)
	}
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}

	var joined *Match
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := totalSpots(ctx, tx, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO match_players (match_id, username, status, joined_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(match_id, username) DO NOTHING
		`, id, username, string(PlayerRequested), time.Now().UnixMilli())
		if err != nil {
			return apperr.Persistence("insert join request", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return apperr.Persistence("insert join request", err)
		}
		if affected == 0 {
			return fmt.Errorf("%q is already in match %s: %w", username, id, apperr.ErrConflict)
		}
		if err := claimSpot(ctx, tx, id); err != nil {
			return err
		}
		if err := recordUpdate(ctx, tx, id, username, ActionJoinRequested); err != nil {
			return err
		}
		joined, err = loadMatch(ctx, tx, id)
		return err
	})
	if err != nil {
		log.FromContext(ctx).Warn("Join match failed", "match", id, "username", username, "code", apperr.Code(err), "error", err)
		return nil, err
	}
	log.FromContext(ctx).Info("Join request recorded", "match", id, "username", username)
	return joined, nil
}

func (s *store) ConfirmJoin(ctx context.Context, id, username string) (*Match, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperr.ErrValidation)
	}

	var confirmed *Match
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := totalSpots(ctx, tx, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE match_players SET status = ?
			WHERE match_id = ? AND username = ? AND status = ?
		`, string(PlayerJoined), id, username, string(PlayerRequested))
		if err != nil {
			return apperr.Persistence("confirm join", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return apperr.Persistence("confirm join", err)
		}
		if affected == 0 {
			return fmt.Errorf("join request from %q in match %s: %w", username, id, apperr.ErrNotFound)
		}
		if err := recordUpdate(ctx, tx, id, username, ActionJoinConfirmed); err != nil {
			return err
		}
		confirmed, err = loadMatch(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Info("Join confirmed", "match", id, "username", username)
	return confirmed, nil
}

func (s *store) ReserveSpot(ctx context.Context, id string, spotIndex int, reserve bool) (*Match, error) {
	var updated *Match
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		total, err := totalSpots(ctx, tx, id)
		if err != nil {
			return err
		}
		if spotIndex < 0 || spotIndex >= total {
			return fmt.Errorf("%w: spotIndex must be between 0 and %d", apperr.ErrValidation, total-1)
		}

		if reserve {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO match_reserved_spots (match_id, spot_index) VALUES (?, ?)
				ON CONFLICT(match_id, spot_index) DO NOTHING
			`, id, spotIndex)
			if err != nil {
				return apperr.Persistence("reserve spot", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return apperr.Persistence("reserve spot", err)
			}
			if affected == 0 {
				return fmt.Errorf("spot %d in match %s: %w", spotIndex, id, apperr.ErrSlotUnavailable)
			}
			if err := claimSpot(ctx, tx, id); err != nil {
				return err
			}
		} else {
			res, err := tx.ExecContext(ctx, `
				DELETE FROM match_reserved_spots WHERE match_id = ? AND spot_index = ?
			`, id, spotIndex)
			if err != nil {
				return apperr.Persistence("free spot", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return apperr.Persistence("free spot", err)
			}
			// Freeing a spot that is not reserved is a no-op.
			if affected > 0 {
				if err := releaseSpot(ctx, tx, id); err != nil {
					return err
				}
			}
		}

		updated, err = loadMatch(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Info("Updated reserved spot", "match", id, "spot", spotIndex, "reserved", reserve)
	return updated, nil
}

func (s *store) DeleteMatch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM matches WHERE id = ?", id)
	if err != nil {
		return apperr.Persistence("delete match", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence("delete match", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s: %w", id, apperr.ErrNotFound)
	}
	log.FromContext(ctx).Info("Deleted match", "id", id)
	return nil
}

func (s *store) requireUser(ctx context.Context, username string) error {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
	}
	return nil
}

func totalSpots(ctx context.Context, q database.Querier, id string) (int, error) {
	var total int
	err := q.QueryRowContext(ctx, "SELECT total_spots FROM matches WHERE id = ?", id).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("match %s: %w", id, apperr.ErrNotFound)
		}
		return 0, apperr.Persistence("find match", err)
	}
	return total, nil
}

// claimSpot takes one free spot. The occupied < total_spots guard makes it a
// compare-and-swap: a full match affects no rows.
func claimSpot(ctx context.Context, q database.Querier, id string) error {
	res, err := q.ExecContext(ctx, `
		UPDATE matches SET occupied = occupied + 1
		WHERE id = ? AND occupied < total_spots
	`, id)
	if err != nil {
		return apperr.Persistence("claim spot", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence("claim spot", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s: %w", id, apperr.ErrMatchFull)
	}
	return nil
}

func releaseSpot(ctx context.Context, q database.Querier, id string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE matches SET occupied = occupied - 1 WHERE id = ? AND occupied > 0
	`, id)
	if err != nil {
		return apperr.Persistence("release spot", err)
	}
	return nil
}

func recordUpdate(ctx context.Context, q database.Querier, id, username string, action Action) error {
	_, err := outbox.NewStore(q).Insert(ctx, outbox.EventMatchUpdated, MatchUpdated{
		MatchID:  id,
		Username: username,
		Action:   action,
		Occurred: time.UnixMilli(time.Now().UnixMilli()).UTC(),
	})
	return err
}

func listMatches(ctx context.Context, q database.Querier, query string, args ...any) ([]Match, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence("list matches", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, apperr.Persistence("scan match", err)
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, apperr.Persistence("list matches", err)
	}

	matches := make([]Match, 0, len(ids))
	for _, id := range ids {
		m, err := loadMatch(ctx, q, id)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, nil
}

func loadMatch(ctx context.Context, q database.Querier, id string) (*Match, error) {
	var (
		m                        Match
		occupied                 int
		matchDateTime, createdAt int64
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, username, description, level, location, match_date_time, end_time, total_spots, occupied, created_at
		FROM matches WHERE id = ?
	`, id).Scan(&m.ID, &m.Username, &m.Description, &m.Level, &m.Location, &matchDateTime,
		&m.EndTime, &m.TotalSpots, &occupied, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("match %s: %w", id, apperr.ErrNotFound)
		}
		return nil, apperr.Persistence("load match", err)
	}
	m.MatchDateTime = time.UnixMilli(matchDateTime).UTC()
	m.CreatedAt = time.UnixMilli(createdAt).UTC()
	m.Status = StatusOpen
	if occupied >= m.TotalSpots {
		m.Status = StatusFull
	}
	m.Participants = []string{}
	m.JoinRequests = []string{}
	m.ReservedSpots = []int{}

	rows, err := q.QueryContext(ctx, `
		SELECT username, status FROM match_players WHERE match_id = ? ORDER BY joined_at, rowid
	`, id)
	if err != nil {
		return nil, apperr.Persistence("load match players", err)
	}
	for rows.Next() {
		var username, status string
		if err := rows.Scan(&username, &status); err != nil {
			rows.Close()
			return nil, apperr.Persistence("scan match player", err)
		}
		if PlayerStatus(status) == PlayerJoined {
			m.Participants = append(m.Participants, username)
		} else {
			m.JoinRequests = append(m.JoinRequests, username)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, apperr.Persistence("load match players", err)
	}

	rows, err = q.QueryContext(ctx, `
		SELECT spot_index FROM match_reserved_spots WHERE match_id = ? ORDER BY spot_index
	`, id)
	if err != nil {
		return nil, apperr.Persistence("load reserved spots", err)
	}
	defer rows.Close()
	for rows.Next() {
		var spot int
		if err := rows.Scan(&spot); err != nil {
			return nil, apperr.Persistence("scan reserved spot", err)
		}
		m.ReservedSpots = append(m.ReservedSpots, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("load reserved spots", err)
	}

	m.Teams = assignTeams(m.Participants, m.TotalSpots)
	return &m, nil
}

// assignTeams alternates confirmed players between two sides once every spot
// is held by a participant.
func assignTeams(participants []string, totalSpots int) *TeamAssignments {
	if len(participants) != totalSpots || totalSpots%2 != 0 {
		return nil
	}
	teams := &TeamAssignments{Team1: []string{}, Team2: []string{}}
	for i, p := range participants {
		if i%2 == 0 {
			teams.Team1 = append(teams.Team1, p)
		} else {
			teams.Team2 = append(teams.Team2, p)
		}
	}
	return teams
}
