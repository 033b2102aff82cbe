package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/outbox"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/trainer"
	"github.com/mauv0809/courtside/internal/user"
)

type Server struct {
	Trainers       trainer.TrainerStore
	Users          user.UserStore
	Matches        match.MatchStore
	Bookings       booking.Service
	Relay          *outbox.Relay
	PubSub         pubsub.PubSubClient
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
