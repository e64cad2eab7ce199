package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Services groups the application services the router depends on.
type Services struct {
	Events   *EventServices
	Purchase Purchaser
	Tickets  TicketLister
}

// EventServices pairs the public read surface with the admin surface.
type EventServices struct {
	Reader    EventReader
	Authoring Authoring
}

// NewRouter wires all routes with logging and CORS applied.
func NewRouter(svcs Services, corsOrigins []string, logger *logrus.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return RequestLogger(next, logger)
	})
	r.Use(func(next http.Handler) http.Handler {
		return CORS(corsOrigins, next)
	})

	r.Get("/health", HealthHandler)

	r.Get("/events", HandleListEvents(svcs.Events.Reader))
	r.Get("/events/{id}", HandleGetEvent(svcs.Events.Reader))
	r.Post("/events/{id}/purchase", HandlePurchase(svcs.Purchase))
	r.Get("/users/{userID}/tickets", HandleListTickets(svcs.Tickets))

	r.Route("/admin/events", func(r chi.Router) {
		r.Get("/", HandleAdminListEvents(svcs.Events.Authoring))
		r.Post("/", HandleAdminCreateEvent(svcs.Events.Authoring))
		r.Put("/{id}", HandleAdminUpdateEvent(svcs.Events.Authoring))
		r.Delete("/{id}", HandleAdminDeleteEvent(svcs.Events.Authoring))
	})

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
