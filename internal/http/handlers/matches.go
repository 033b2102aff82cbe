package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/match"
)

func ListMatchesHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.ListMatches(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func GetMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func ListPlayerMatchesHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.ListMatchesByPlayer(r.Context(), r.PathValue("username"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func CreateMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		start, err := time.Parse(time.RFC3339, req.MatchDateTime)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: matchDateTime must be an RFC 3339 timestamp", apperr.ErrValidation))
			return
		}

		created, err := store.CreateMatch(r.Context(), match.NewMatch{
			Username:      req.Username,
			Description:   req.Description,
			Level:         req.Level,
			Location:      req.Location,
			MatchDateTime: start,
			EndTime:       req.EndTime,
			TotalSpots:    req.TotalSpots,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func JoinMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchPlayerRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := store.JoinMatch(r.Context(), r.PathValue("id"), req.Username)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func ConfirmJoinHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchPlayerRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := store.ConfirmJoin(r.Context(), r.PathValue("id"), req.Username)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func ReserveSpotHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reserveSpotRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := store.ReserveSpot(r.Context(), r.PathValue("id"), *req.SpotIndex, *req.Reserve)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// DeleteMatchHandler removes a match and responds with the remaining ones.
func DeleteMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteMatch(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, r, err)
			return
		}
		matches, err := store.ListMatches(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}
