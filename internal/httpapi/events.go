package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"ivarberg/internal/calendar"
	"ivarberg/internal/categories"
	"ivarberg/internal/events"
	"ivarberg/internal/logging"
	"ivarberg/internal/models"
	"ivarberg/internal/seo"
)

const (
	maxPageSize     = 100
	suggestionLimit = 8
)

type eventDetail struct {
	models.EventDisplay
	DescriptionHTML string `json:"description_html"`
	Excerpt         string `json:"excerpt"`
}

type eventsResponse struct {
	Events []models.EventDisplay `json:"events"`
}

type suggestionsResponse struct {
	Suggestions []events.Suggestion `json:"suggestions"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	listing, dateRange, err := s.parseListing(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := r.Context()
	var all []models.EventDisplay
	switch term := strings.TrimSpace(r.URL.Query().Get("q")); {
	case term != "":
		all = s.events.Search(ctx, term)
	case dateRange != nil:
		all = s.events.ByDateRange(ctx, *dateRange)
	default:
		all = s.events.Published(ctx)
	}

	writeJSON(w, http.StatusOK, listing.Result(all))
}

// parseListing reads the listing query. The returned range is set only for an
// explicit from/to span, which is loaded as is instead of from today onwards.
func (s *Server) parseListing(r *http.Request) (*events.Listing, *calendar.Range, error) {
	q := r.URL.Query()

	pageSize := events.PageSize
	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			return nil, nil, errors.New("invalid page_size")
		}
		pageSize = n
	}
	listing := events.NewListing(pageSize)

	if raw := q["category"]; len(raw) > 0 {
		selected := make([]models.Category, 0, len(raw))
		for _, value := range raw {
			c := models.Category(strings.TrimSpace(value))
			if !categories.Known(c) {
				return nil, nil, fmt.Errorf("unknown category %q", value)
			}
			selected = append(selected, c)
		}
		listing.SetCategories(categories.Dedupe(selected))
	}

	if raw := q.Get("date"); raw != "" {
		day, err := calendar.ParseDate(raw)
		if err != nil {
			return nil, nil, errors.New("invalid date")
		}
		listing.SetDate(&day)
	}

	var explicit *calendar.Range
	if from, to := q.Get("from"), q.Get("to"); from != "" || to != "" {
		if from == "" {
			from = to
		}
		if to == "" {
			to = from
		}
		first, err := calendar.ParseDate(from)
		if err != nil {
			return nil, nil, errors.New("invalid from")
		}
		last, err := calendar.ParseDate(to)
		if err != nil {
			return nil, nil, errors.New("invalid to")
		}
		rg := calendar.NewRange(first, last)
		listing.SetRange(&rg)
		explicit = &rg
	}

	if raw := q.Get("range"); raw != "" {
		rg, err := calendar.NamedRange(raw, s.events.Now())
		if err != nil {
			return nil, nil, errors.New("invalid range")
		}
		listing.SetRange(&rg)
		explicit = nil
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, errors.New("invalid page")
		}
		listing.SetPage(page)
	}

	return listing, explicit, nil
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, eventsResponse{Events: s.events.Featured(r.Context())})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: []events.Suggestion{}})
		return
	}

	all := s.events.Published(r.Context())
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Suggestions: events.Suggest(all, term, suggestionLimit),
	})
}

// loadEvent resolves the {id} route variable, writing the error response
// itself when the event cannot be returned.
func (s *Server) loadEvent(w http.ResponseWriter, r *http.Request) (models.EventDisplay, bool) {
	id := mux.Vars(r)["id"]
	event, err := s.events.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
			return models.EventDisplay{}, false
		}
		logging.WithContext(r.Context()).Error().
			Err(err).
			Str("event_id", id).
			Msg("load event failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load event"})
		return models.EventDisplay{}, false
	}
	return event, true
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := s.loadEvent(w, r)
	if !ok {
		return
	}

	rendered, err := events.RenderDescription(event.Description, event.DescriptionFormat)
	if err != nil {
		logging.WithContext(r.Context()).Warn().
			Err(err).
			Str("event_id", event.ID).
			Msg("render description failed")
	}

	writeJSON(w, http.StatusOK, eventDetail{
		EventDisplay:    event,
		DescriptionHTML: rendered,
		Excerpt:         events.Excerpt(events.PlainText(event.Description, event.DescriptionFormat)),
	})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	event, ok := s.loadEvent(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: s.events.Similar(r.Context(), event)})
}

func (s *Server) handleEventSchema(w http.ResponseWriter, r *http.Request) {
	event, ok := s.loadEvent(w, r)
	if !ok {
		return
	}
	writeLD(w, seo.EventSchema(event, s.site))
}

// eventListingPath is the public listing page an event detail sits under.
const eventListingPath = "/evenemang-varberg"

func (s *Server) handleEventBreadcrumb(w http.ResponseWriter, r *http.Request) {
	event, ok := s.loadEvent(w, r)
	if !ok {
		return
	}
	writeLD(w, seo.BreadcrumbSchema(s.site, []seo.Crumb{
		{Label: "Evenemang", Href: eventListingPath},
		{Label: event.Title, Href: "/event/" + event.ID},
	}))
}

func (s *Server) handleEventCalendar(w http.ResponseWriter, r *http.Request) {
	event, ok := s.loadEvent(w, r)
	if !ok {
		return
	}

	body := events.ICS(event, s.events.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", events.ICSFilename(event.Title)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
