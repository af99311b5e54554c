// Package sitemap renders the XML sitemap of the public site.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"ivarberg/internal/logging"
	"ivarberg/internal/models"
	"ivarberg/internal/site"
)

const (
	xmlns        = "http://www.sitemaps.org/schemas/sitemap/0.9"
	dateLayout   = "2006-01-02"
	cacheControl = "public, s-maxage=3600, stale-while-revalidate=86400"
)

// URL is one <url> entry of the sitemap.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Build lists the static pages followed by every event and organizer page.
// Events use their update time as lastmod and fall back to their date.
func Build(cfg site.Config, evs []models.Event, pages []models.OrganizerPage, now time.Time) URLSet {
	today := now.UTC().Format(dateLayout)

	set := URLSet{Xmlns: xmlns}
	for _, p := range cfg.StaticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        cfg.URL(p.Path),
			LastMod:    today,
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}

	for _, e := range evs {
		if e.EventID == "" {
			continue
		}
		mod := e.DateTime
		if e.UpdatedAt != nil {
			mod = *e.UpdatedAt
		}
		set.URLs = append(set.URLs, URL{
			Loc:        cfg.URL("/event/" + e.EventID),
			LastMod:    mod.UTC().Format(dateLayout),
			ChangeFreq: "weekly",
			Priority:   "0.9",
		})
	}

	for _, p := range pages {
		if p.Slug == "" {
			continue
		}
		set.URLs = append(set.URLs, URL{
			Loc:        cfg.URL("/arrangor/" + p.Slug),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	return set
}

// Render encodes set as an XML document.
func Render(set URLSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EventSource lists events for the sitemap.
type EventSource interface {
	ListEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error)
}

// PageLister lists published organizer pages.
type PageLister interface {
	List(ctx context.Context) []models.OrganizerPage
}

// Handler serves the sitemap. When events cannot be loaded the static
// pages are still served with status 200.
type Handler struct {
	cfg    site.Config
	events EventSource
	pages  PageLister
	now    func() time.Time
}

// NewHandler constructs a Handler. pages may be nil.
func NewHandler(cfg site.Config, events EventSource, pages PageLister) *Handler {
	return &Handler{cfg: cfg, events: events, pages: pages, now: time.Now}
}

// WithClock replaces the clock used for lastmod of static pages.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithContext(ctx)

	evs, err := h.events.ListEvents(ctx, models.EventQuery{
		Status: models.StatusPublished,
		Order:  models.OrderChronological,
	})
	if err != nil {
		logger.Error().Err(err).Msg("sitemap: list events failed, serving static pages only")
		evs = nil
	}

	var pages []models.OrganizerPage
	if h.pages != nil {
		pages = h.pages.List(ctx)
	}

	body, err := Render(Build(h.cfg, evs, pages, h.now()))
	if err != nil {
		logger.Error().Err(err).Msg("sitemap: render failed, serving static pages only")
		body, err = Render(Build(h.cfg, nil, nil, h.now()))
		if err != nil {
			http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
