package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ivarberg/internal/calendar"
	"ivarberg/internal/http/middleware"
	"ivarberg/internal/logging"
	"ivarberg/internal/metrics"
	"ivarberg/internal/models"
	"ivarberg/internal/organizers"
	"ivarberg/internal/site"
	"ivarberg/internal/tips"
)

// EventService exposes the read operations on published events.
type EventService interface {
	Published(ctx context.Context) []models.EventDisplay
	Featured(ctx context.Context) []models.EventDisplay
	ByDateRange(ctx context.Context, r calendar.Range) []models.EventDisplay
	Search(ctx context.Context, term string) []models.EventDisplay
	Get(ctx context.Context, eventID string) (models.EventDisplay, error)
	Similar(ctx context.Context, focal models.EventDisplay) []models.EventDisplay
	Now() time.Time
}

// TipService accepts event tips.
type TipService interface {
	Submit(ctx context.Context, identifier string, sub tips.Submission) (int64, error)
}

// NewsletterService manages newsletter sign-ups.
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
}

// OrganizerService reads organizer landing pages.
type OrganizerService interface {
	Page(ctx context.Context, slug string) (organizers.PageView, error)
	List(ctx context.Context) []models.OrganizerPage
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// Server wires the HTTP routes to the services.
type Server struct {
	health     Pinger
	events     EventService
	tips       TipService
	newsletter NewsletterService
	organizers OrganizerService
	sitemap    http.Handler
	site       site.Config
	metrics    *metrics.Metrics
}

// New configures a Server. A nil sitemap handler leaves the sitemap routes out.
func New(
	events EventService,
	tips TipService,
	newsletter NewsletterService,
	organizers OrganizerService,
	sitemap http.Handler,
	siteCfg site.Config,
	m *metrics.Metrics,
) *Server {
	return &Server{
		events:     events,
		tips:       tips,
		newsletter: newsletter,
		organizers: organizers,
		sitemap:    sitemap,
		site:       siteCfg,
		metrics:    m,
	}
}

// WithHealthCheck makes /health ping p and answer 503 while it fails.
func (s *Server) WithHealthCheck(p Pinger) *Server {
	s.health = p
	return s
}

// Routes exposes the public site API.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Metrics(s.metrics))

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	if s.sitemap != nil {
		router.Handle("/sitemap.xml", s.sitemap).Methods(http.MethodGet)
		router.Handle("/api/sitemap.xml", s.sitemap).Methods(http.MethodGet)
	}

	// Method checks happen in the handler so other verbs get a JSON 405.
	router.HandleFunc("/api/submit-event-tip", s.handleSubmitTip)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	api.HandleFunc("/events/featured", s.handleFeatured).Methods(http.MethodGet)
	api.HandleFunc("/events/suggestions", s.handleSuggestions).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", s.handleEvent).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/similar", s.handleSimilar).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/schema", s.handleEventSchema).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/breadcrumb", s.handleEventBreadcrumb).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/calendar.ics", s.handleEventCalendar).Methods(http.MethodGet)

	api.HandleFunc("/organizers", s.handleOrganizers).Methods(http.MethodGet)
	api.HandleFunc("/organizers/{slug}", s.handleOrganizer).Methods(http.MethodGet)

	api.HandleFunc("/newsletter", s.handleNewsletter).Methods(http.MethodPost)

	api.HandleFunc("/schema/{kind}", s.handleSchema).Methods(http.MethodGet)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			logging.WithContext(r.Context()).Error().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("UNAVAILABLE"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeLD(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}
