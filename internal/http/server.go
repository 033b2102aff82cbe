package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/outbox"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/trainer"
	"github.com/mauv0809/courtside/internal/user"
)

func NewServer(trainers trainer.TrainerStore, users user.UserStore, matches match.MatchStore, bookings booking.Service, relay *outbox.Relay, pubsub pubsub.PubSubClient, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Trainers:       trainers,
		Users:          users,
		Matches:        matches,
		Bookings:       bookings,
		Relay:          relay,
		PubSub:         pubsub,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/v1/trainers", Chain(handlers.ListTrainersHandler(s.Trainers), paramsMiddleware))
	s.Router.Handle("POST /api/v1/trainers", Chain(handlers.CreateTrainerHandler(s.Trainers), paramsMiddleware))
	s.Router.Handle("POST /api/v1/trainers/book", Chain(handlers.BookTrainerHandler(s.Bookings), paramsMiddleware))
	s.Router.Handle("GET /api/v1/trainers/{username}", Chain(handlers.GetTrainerHandler(s.Trainers), paramsMiddleware))
	s.Router.Handle("POST /api/v1/trainers/{username}/availability", Chain(handlers.AddAvailabilityHandler(s.Trainers), paramsMiddleware))
	s.Router.Handle("POST /api/v1/trainers/{username}/messages", Chain(handlers.SendMessageHandler(s.Trainers), paramsMiddleware))
	s.Router.Handle("GET /api/v1/trainers/{username}/messages", Chain(handlers.GetMessagesHandler(s.Trainers), paramsMiddleware))
	s.Router.Handle("GET /api/v1/bookings/{username}", Chain(handlers.ListBookingsHandler(s.Bookings), paramsMiddleware))

	s.Router.Handle("GET /api/v1/matches", Chain(handlers.ListMatchesHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("POST /api/v1/matches", Chain(handlers.CreateMatchHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("GET /api/v1/matches/{id}", Chain(handlers.GetMatchHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("DELETE /api/v1/matches/{id}", Chain(handlers.DeleteMatchHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("POST /api/v1/matches/{id}/join", Chain(handlers.JoinMatchHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("POST /api/v1/matches/{id}/confirm", Chain(handlers.ConfirmJoinHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("PATCH /api/v1/matches/{id}/reserve", Chain(handlers.ReserveSpotHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("GET /api/v1/matches/player/{username}", Chain(handlers.ListPlayerMatchesHandler(s.Matches), paramsMiddleware))

	s.Router.Handle("POST /api/v1/users", Chain(handlers.RegisterUserHandler(s.Users), paramsMiddleware))
	s.Router.Handle("GET /api/v1/users", Chain(handlers.ListUsersHandler(s.Users), paramsMiddleware))
	s.Router.Handle("POST /api/v1/users/change-role", Chain(handlers.ChangeRoleHandler(s.Users), paramsMiddleware))

	s.Router.Handle("POST /outbox/relay", Chain(handlers.RelayOutboxHandler(s.Relay), paramsMiddleware))
	s.Router.Handle("POST /pubsub/booking-created", Chain(handlers.BookingCreatedHandler(s.PubSub, s.Notifier), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
