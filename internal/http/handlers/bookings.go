package handlers

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/booking"
)

// BookTrainerHandler books a trainer slot. Failures are reported as
// {"message": ..., "code": ...}.
func BookTrainerHandler(bookings booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookTrainerRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeBookingError(w, r, err)
			return
		}

		b, err := bookings.BookTrainer(r.Context(), req.Username, req.TrainerUsername, req.Date, req.TimeSlot)
		if err != nil {
			writeBookingError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func ListBookingsHandler(bookings booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := bookings.ListBookingsForUser(r.Context(), r.PathValue("username"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func writeBookingError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logError(r, status, err)
	writeJSON(w, status, bookingErrorResponse{
		Message: publicMessage(err, status),
		Code:    apperr.Code(err),
	})
}
