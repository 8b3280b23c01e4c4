package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"kalender/internal/delivery/http/controllers"
	"kalender/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// participateLimiter throttles participation submissions per client.
func NewRouter(
	eventController *controllers.EventController,
	participationController *controllers.ParticipationController,
	statisticsController *controllers.StatisticsController,
	participateLimiter *middleware.RateLimiter,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /api/events", eventController.ListEvents)
	mux.HandleFunc("GET /api/events/admin", eventController.ListAdminEvents)
	mux.HandleFunc("GET /api/events/{id}", eventController.GetEvent)
	mux.HandleFunc("POST /api/events", eventController.CreateEvent)
	mux.HandleFunc("PUT /api/events/{id}", eventController.UpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", eventController.DeleteEvent)

	// Participation
	mux.Handle("POST /api/events/{id}/participate",
		middleware.RateLimit(participateLimiter, http.HandlerFunc(participationController.Participate)))
	mux.HandleFunc("GET /api/events/{id}/participants", participationController.ListParticipants)

	// Statistics
	mux.HandleFunc("GET /api/events/{id}/statistics", statisticsController.GetEventStatistics)
	mux.HandleFunc("GET /api/statistics", statisticsController.GetAllStatistics)

	mux.HandleFunc("GET /api/health", controllers.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", controllers.NotFound)

	return mux
}
