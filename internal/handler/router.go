package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes bundles the handlers mounted by NewRouter. Lookups is nil when the
// audit log is disabled.
type Routes struct {
	Health  *HealthHandler
	Cars    *CarHandler
	Lookups *LookupHandler
	Live    *LiveHandler
}

func NewRouter(routes Routes, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors)

	r.Get("/health", routes.Health.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cars/featured", routes.Cars.Featured)
		r.Post("/cars/search", routes.Cars.Search)
		r.Get("/cars/search", routes.Cars.SearchQuery)
		if routes.Lookups != nil {
			r.Get("/lookups/stats", routes.Lookups.Stats)
		}
		if routes.Live != nil {
			r.Get("/lookups/live", routes.Live.Live)
		}
	})

	return r
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
