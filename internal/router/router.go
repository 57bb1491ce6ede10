package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-poi-itinerary/docs"
	"github.com/FACorreiaa/go-poi-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-poi-itinerary/internal/api/session"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler *itinerary.HandlerImpl
	SessionHandler   *session.HandlerImpl
	AllowedOrigins   []string
	// PromptRateLimit caps language-model requests per client IP per minute.
	// Zero disables the limit.
	PromptRateLimit int
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/tags", cfg.ItineraryHandler.GetCatalogTags)

		r.Route("/itinerary", func(r chi.Router) {
			r.Post("/rank", cfg.ItineraryHandler.RankItinerary)
			r.Group(func(r chi.Router) {
				if cfg.PromptRateLimit > 0 {
					r.Use(httprate.LimitByIP(cfg.PromptRateLimit, time.Minute))
				}
				r.Post("/prompt", cfg.ItineraryHandler.PromptItinerary)
			})
		})

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", cfg.SessionHandler.GetSession)
			r.Post("/suggestions/{index}/{direction}", cfg.SessionHandler.CycleSuggestion)
		})
	})

	return r
}
