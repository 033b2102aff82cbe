package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/outbox"
)

// RelayOutboxHandler runs one outbox relay pass on demand.
func RelayOutboxHandler(relay *outbox.Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		logger.Info("Manual outbox relay triggered")
		published, err := relay.Run(r.Context())
		if err != nil {
			logger.Error("Outbox relay failed", "published", published, "error", err)
			writeJSON(w, http.StatusInternalServerError, relayResponse{Published: published, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, relayResponse{Published: published})
	}
}
