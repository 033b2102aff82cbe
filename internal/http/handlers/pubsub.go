package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
)

// BookingCreatedHandler receives booking-created events from a Pub/Sub push
// subscription and announces them. Any non-2xx response makes Pub/Sub
// redeliver the message.
func BookingCreatedHandler(pubsubClient pubsub.PubSubClient, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		logger.Debug("Received booking-created message", "body", string(bodyBytes))

		var pushReq pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &pushReq); err != nil {
			logger.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := pushReq.Payload()
		if err != nil {
			logger.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var evt booking.BookingCreated
		if err := pubsubClient.ProcessMessage(rawData, &evt); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if err := n.SendBookingNotification(r.Context(), evt, IsDryRunFromContext(r)); err != nil {
			logger.Error("Failed to send booking notification", "booking", evt.BookingID, "error", err)
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
