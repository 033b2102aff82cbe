package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/trainer"
)

func ListTrainersHandler(store trainer.TrainerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainers, err := store.ListTrainers(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, trainers)
	}
}

func GetTrainerHandler(store trainer.TrainerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")
		t, err := store.GetTrainerByUsername(r.Context(), username)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func CreateTrainerHandler(store trainer.TrainerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTrainerRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		nt := trainer.NewTrainer{
			Username:  req.Username,
			Name:      req.Name,
			Specialty: req.Specialty,
			Bio:       req.Bio,
		}
		for _, a := range req.Availability {
			date, err := trainer.ParseDate(a.Date)
			if err != nil {
				writeError(w, r, err)
				return
			}
			nt.Availability = append(nt.Availability, trainer.SlotsForDate{Date: date, TimeSlots: a.TimeSlots})
		}

		created, err := store.CreateTrainer(r.Context(), nt)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func AddAvailabilityHandler(store trainer.TrainerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req availabilityRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		date, err := trainer.ParseDate(req.Date)
		if err != nil {
			writeError(w, r, err)
			return
		}

		updated, err := store.AddAvailability(r.Context(), r.PathValue("username"), date, req.TimeSlots)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func SendMessageHandler(store trainer.TrainerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		msg, err := store.SendMessage(r.Context(), req.SenderUsername, r.PathValue("username"), req.Content)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

func GetMessagesHandler(store trainer.TrainerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		if username == "" {
			writeError(w, r, fmt.Errorf("%w: username query parameter is required", apperr.ErrValidation))
			return
		}

		messages, err := store.GetMessages(r.Context(), username, r.PathValue("username"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.FromContext(r.Context()).Debug("Fetched trainer messages", "trainer", r.PathValue("username"), "username", username, "count", len(messages))
		writeJSON(w, http.StatusOK, messages)
	}
}
