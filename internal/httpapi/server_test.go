package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ivarberg/internal/calendar"
	"ivarberg/internal/events"
	"ivarberg/internal/models"
	"ivarberg/internal/newsletter"
	"ivarberg/internal/organizers"
	"ivarberg/internal/site"
	"ivarberg/internal/tips"
)

var testNow = time.Date(2025, time.March, 5, 9, 0, 0, 0, calendar.Location)

type stubEventService struct {
	published []models.EventDisplay
	featured  []models.EventDisplay
	searched  []models.EventDisplay
	ranged    []models.EventDisplay
	similar   []models.EventDisplay

	single    models.EventDisplay
	singleErr error

	lastSearch string
	lastRange  *calendar.Range
	lastID     string
}

func (s *stubEventService) Published(context.Context) []models.EventDisplay { return s.published }
func (s *stubEventService) Featured(context.Context) []models.EventDisplay  { return s.featured }

func (s *stubEventService) ByDateRange(_ context.Context, r calendar.Range) []models.EventDisplay {
	s.lastRange = &r
	return s.ranged
}

func (s *stubEventService) Search(_ context.Context, term string) []models.EventDisplay {
	s.lastSearch = term
	return s.searched
}

func (s *stubEventService) Get(_ context.Context, id string) (models.EventDisplay, error) {
	s.lastID = id
	if s.singleErr != nil {
		return models.EventDisplay{}, s.singleErr
	}
	return s.single, nil
}

func (s *stubEventService) Similar(context.Context, models.EventDisplay) []models.EventDisplay {
	return s.similar
}

func (s *stubEventService) Now() time.Time { return testNow }

type stubTipService struct {
	id  int64
	err error

	lastIdentifier string
	lastSubmission tips.Submission
}

func (s *stubTipService) Submit(_ context.Context, identifier string, sub tips.Submission) (int64, error) {
	s.lastIdentifier = identifier
	s.lastSubmission = sub
	return s.id, s.err
}

type stubNewsletterService struct {
	err       error
	lastEmail string
}

func (s *stubNewsletterService) Subscribe(_ context.Context, email string) error {
	s.lastEmail = email
	return s.err
}

type stubOrganizerService struct {
	view  organizers.PageView
	err   error
	pages []models.OrganizerPage
}

func (s *stubOrganizerService) Page(context.Context, string) (organizers.PageView, error) {
	return s.view, s.err
}

func (s *stubOrganizerService) List(context.Context) []models.OrganizerPage { return s.pages }

type testServer struct {
	events     *stubEventService
	tips       *stubTipService
	newsletter *stubNewsletterService
	organizers *stubOrganizerService
	handler    http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		events:     &stubEventService{},
		tips:       &stubTipService{},
		newsletter: &stubNewsletterService{},
		organizers: &stubOrganizerService{},
	}
	sitemap := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte("<urlset/>"))
	})
	srv := New(ts.events, ts.tips, ts.newsletter, ts.organizers, sitemap, site.Default(), nil)
	ts.handler = srv.Routes()
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func display(id, title string, day int, cats ...models.Category) models.EventDisplay {
	main := models.CategoryUncategorized
	if len(cats) > 0 {
		main = cats[0]
	}
	return models.EventDisplay{
		ID:         id,
		Title:      title,
		Category:   main,
		Categories: cats,
		Date:       time.Date(2025, time.March, day, 19, 0, 0, 0, calendar.Location),
		Location:   models.LocationDisplay{Address: "Kungsgatan 1, Varberg"},
		Status:     models.StatusPublished,
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	rr := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", rr.Code, rr.Body.String())
	}
}

type stubPinger struct {
	err   error
	calls int
}

func (p *stubPinger) Ping(ctx context.Context) error {
	p.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return p.err
}

func TestHealthPingsBackend(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"reachable", nil, http.StatusOK, "OK"},
		{"unreachable", errors.New("connection refused"), http.StatusServiceUnavailable, "UNAVAILABLE"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			pinger := &stubPinger{err: tc.err}
			srv := New(&stubEventService{}, &stubTipService{}, &stubNewsletterService{}, &stubOrganizerService{}, nil, site.Default(), nil).
				WithHealthCheck(pinger)

			rr := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rr.Code != tc.wantCode || rr.Body.String() != tc.wantBody {
				t.Fatalf("got %d %q, want %d %q", rr.Code, rr.Body.String(), tc.wantCode, tc.wantBody)
			}
			if pinger.calls != 1 {
				t.Fatalf("expected one ping, got %d", pinger.calls)
			}
		})
	}
}

func TestSitemapRoutes(t *testing.T) {
	ts := newTestServer()
	for _, path := range []string{"/sitemap.xml", "/api/sitemap.xml"} {
		rr := ts.do(httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK || rr.Body.String() != "<urlset/>" {
			t.Fatalf("%s: unexpected response %d %q", path, rr.Code, rr.Body.String())
		}
	}
}

func TestHandleEventsFiltersAndPaginates(t *testing.T) {
	ts := newTestServer()
	for i := 1; i <= 12; i++ {
		cats := []models.Category{models.CategoryScen}
		if i%2 == 0 {
			cats = append(cats, models.CategorySport)
		}
		ts.events.published = append(ts.events.published, display(fmt.Sprintf("evt-%d", i), "Event", 5+i%10, cats...))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?category=Sport&page_size=4&page=2", nil)
	rr := ts.do(req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var page events.Page
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 6 || page.TotalPages != 2 || page.Page != 2 || len(page.Events) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	for _, e := range page.Events {
		if e.Category != models.CategoryScen {
			t.Fatalf("expected main category Scen, got %+v", e)
		}
		if e.BadgeCategory != models.CategorySport || e.ExtraCategories != 1 {
			t.Fatalf("expected badge Sport +1, got %q +%d", e.BadgeCategory, e.ExtraCategories)
		}
	}
}

func TestHandleEventsPageBeyondEnd(t *testing.T) {
	ts := newTestServer()
	for i := 1; i <= 3; i++ {
		ts.events.published = append(ts.events.published, display(fmt.Sprintf("evt-%d", i), "Event", 5+i, models.CategoryScen))
	}

	for _, page := range []string{"2", "9223372036854775807"} {
		rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events?page_size=100&page="+page, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("page %s: expected 200, got %d: %s", page, rr.Code, rr.Body.String())
		}
		var got events.Page
		if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got.Events) != 0 || got.Total != 3 || got.TotalPages != 1 {
			t.Fatalf("page %s: unexpected page %+v", page, got)
		}
	}
}

func TestHandleEventsBadQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"unknown category", "category=Opera"},
		{"bad date", "date=5%20mars"},
		{"bad range", "range=decade"},
		{"bad page size", "page_size=0"},
		{"bad page", "page=two"},
		{"bad from", "from=2025-13-01"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer()
			rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events?"+tc.query, nil))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestHandleEventsSearchAndRange(t *testing.T) {
	ts := newTestServer()
	ts.events.searched = []models.EventDisplay{display("evt-1", "Jazzkväll", 6, models.CategoryScen)}

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events?q=jazz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ts.events.lastSearch != "jazz" {
		t.Fatalf("expected search term jazz, got %q", ts.events.lastSearch)
	}
	if !strings.Contains(rr.Body.String(), "Jazzkväll") {
		t.Fatalf("expected search hit in body: %s", rr.Body.String())
	}

	ts.events.ranged = []models.EventDisplay{display("evt-2", "Marknad", 20, models.CategoryMarknader)}
	rr = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events?from=2025-03-20&to=2025-03-21", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ts.events.lastRange == nil {
		t.Fatal("expected explicit range to be loaded by date range")
	}
	wantStart := time.Date(2025, time.March, 20, 0, 0, 0, 0, calendar.Location)
	if !ts.events.lastRange.Start.Equal(wantStart) {
		t.Fatalf("unexpected range start %v", ts.events.lastRange.Start)
	}
	if !strings.Contains(rr.Body.String(), "Marknad") {
		t.Fatalf("expected ranged event in body: %s", rr.Body.String())
	}
}

func TestHandleSuggestions(t *testing.T) {
	ts := newTestServer()
	ts.events.published = []models.EventDisplay{
		display("evt-1", "Jazz på fästningen", 6, models.CategoryScen),
		display("evt-2", "Loppis", 7, models.CategoryMarknader),
	}

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/suggestions?q=jaz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp suggestionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].EventID != "evt-1" {
		t.Fatalf("unexpected suggestions %+v", resp.Suggestions)
	}

	rr = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/suggestions", nil))
	if !strings.Contains(rr.Body.String(), `"suggestions":[]`) {
		t.Fatalf("expected empty suggestions, got %s", rr.Body.String())
	}
}

func TestHandleEventDetail(t *testing.T) {
	ts := newTestServer()
	ts.events.single = display("evt-1", "Jazz", 6, models.CategoryScen)
	ts.events.single.Description = "**Välkomna** till en kväll med jazz."
	ts.events.single.DescriptionFormat = models.FormatMarkdown

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ts.events.lastID != "evt-1" {
		t.Fatalf("expected id evt-1, got %q", ts.events.lastID)
	}
	var got map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["id"] != "evt-1" || got["title"] != "Jazz" {
		t.Fatalf("expected embedded event fields, got %v", got)
	}
	if html, _ := got["description_html"].(string); !strings.Contains(html, "<strong>Välkomna</strong>") {
		t.Fatalf("expected rendered markdown, got %q", html)
	}
	if got["excerpt"] != "Välkomna till en kväll med jazz." {
		t.Fatalf("unexpected excerpt %v", got["excerpt"])
	}
}

func TestHandleEventErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", events.ErrEventNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", events.ErrEventNotFound), http.StatusNotFound},
		{"upstream failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer()
			ts.events.singleErr = tc.err
			for _, path := range []string{"/api/v1/events/x", "/api/v1/events/x/similar", "/api/v1/events/x/schema", "/api/v1/events/x/calendar.ics"} {
				rr := ts.do(httptest.NewRequest(http.MethodGet, path, nil))
				if rr.Code != tc.status {
					t.Fatalf("%s: expected %d, got %d", path, tc.status, rr.Code)
				}
			}
		})
	}
}

func TestHandleSimilar(t *testing.T) {
	ts := newTestServer()
	ts.events.single = display("evt-1", "Jazz", 6, models.CategoryScen)
	ts.events.similar = []models.EventDisplay{display("evt-2", "Blues", 7, models.CategoryScen)}

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/similar", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp eventsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].ID != "evt-2" {
		t.Fatalf("unexpected similar events %+v", resp.Events)
	}
}

func TestHandleEventSchema(t *testing.T) {
	ts := newTestServer()
	ts.events.single = display("evt-1", "Jazz", 6, models.CategoryScen)

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/schema", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/ld+json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var doc map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["@type"] != "Event" || doc["name"] != "Jazz" {
		t.Fatalf("unexpected schema %v", doc)
	}
}

func TestHandleEventBreadcrumb(t *testing.T) {
	ts := newTestServer()
	ts.events.single = display("evt-1", "Jazz", 6, models.CategoryScen)

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/breadcrumb", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/ld+json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var doc struct {
		Type  string `json:"@type"`
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
			Item     string `json:"item"`
		} `json:"itemListElement"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Type != "BreadcrumbList" || len(doc.Items) != 3 {
		t.Fatalf("unexpected breadcrumb %+v", doc)
	}
	last := doc.Items[2]
	if last.Position != 3 || last.Name != "Jazz" || last.Item != "https://ivarberg.nu/event/evt-1" {
		t.Fatalf("unexpected last crumb %+v", last)
	}

	ts.events.singleErr = events.ErrEventNotFound
	rr = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/breadcrumb", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing event, got %d", rr.Code)
	}
}

func TestHandleEventCalendar(t *testing.T) {
	ts := newTestServer()
	ts.events.single = display("evt-1", "Jazz Kväll", 6, models.CategoryScen)

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/calendar.ics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="jazz_kv_ll.ics"` {
		t.Fatalf("unexpected disposition %q", cd)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "DTSTART:20250306T180000Z") {
		t.Fatalf("unexpected calendar body %s", body)
	}
}

func TestHandleSubmitTipMethodNotAllowed(t *testing.T) {
	ts := newTestServer()
	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/submit-event-tip", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	var resp tipResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error != MsgMethodNotAllowed {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleSubmitTip(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		err        error
		status     int
		message    string
		retryAfter string
	}{
		{
			name:   "accepted",
			body:   `{"event_name":"Jazz","categories":["Scen"]}`,
			status: http.StatusOK,
		},
		{
			name:    "invalid json",
			body:    `{"event_name":`,
			status:  http.StatusBadRequest,
			message: MsgInvalidRequest,
		},
		{
			name:    "validation",
			body:    `{}`,
			err:     &tips.ValidationError{Field: "event_name", Message: tips.MsgRequired},
			status:  http.StatusBadRequest,
			message: tips.MsgRequired,
		},
		{
			name:       "rate limited",
			body:       `{}`,
			err:        &tips.RateLimitError{RetryAfter: 90500 * time.Millisecond},
			status:     http.StatusTooManyRequests,
			message:    MsgRateLimited,
			retryAfter: "91",
		},
		{
			name:    "storage",
			body:    `{}`,
			err:     fmt.Errorf("%w: insert failed", tips.ErrStorage),
			status:  http.StatusInternalServerError,
			message: MsgTipNotStored,
		},
		{
			name:    "unexpected",
			body:    `{}`,
			err:     context.DeadlineExceeded,
			status:  http.StatusInternalServerError,
			message: "Ett oväntat fel uppstod. Försök igen senare.",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer()
			ts.tips.id = 42
			ts.tips.err = tc.err

			req := httptest.NewRequest(http.MethodPost, "/api/submit-event-tip", bytes.NewBufferString(tc.body))
			req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			rr := ts.do(req)

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}
			var resp tipResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tc.status == http.StatusOK {
				if !resp.Success || resp.TipID != 42 {
					t.Fatalf("unexpected success response %+v", resp)
				}
				if ts.tips.lastIdentifier != "203.0.113.7" {
					t.Fatalf("expected forwarded client, got %q", ts.tips.lastIdentifier)
				}
				if ts.tips.lastSubmission.EventName != "Jazz" {
					t.Fatalf("unexpected submission %+v", ts.tips.lastSubmission)
				}
				return
			}
			if resp.Success || resp.Error != tc.message {
				t.Fatalf("unexpected error response %+v", resp)
			}
			if got := rr.Header().Get("Retry-After"); got != tc.retryAfter {
				t.Fatalf("expected Retry-After %q, got %q", tc.retryAfter, got)
			}
		})
	}
}

func TestHandleNewsletter(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{"subscribed", `{"email":"a@example.se"}`, nil, http.StatusCreated, newsletter.MsgSubscribed},
		{"already subscribed", `{"email":"a@example.se"}`, newsletter.ErrAlreadySubscribed, http.StatusConflict, newsletter.MsgAlreadySubscribed},
		{"invalid email", `{"email":"nope"}`, newsletter.ErrInvalidEmail, http.StatusBadRequest, newsletter.MsgInvalidEmail},
		{"bad json", `nope`, nil, http.StatusBadRequest, newsletter.MsgInvalidEmail},
		{"store failure", `{"email":"a@example.se"}`, errors.New("down"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer()
			ts.newsletter.err = tc.err

			req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", bytes.NewBufferString(tc.body))
			rr := ts.do(req)

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if tc.message != "" && !strings.Contains(rr.Body.String(), tc.message) {
				t.Fatalf("expected message %q in %s", tc.message, rr.Body.String())
			}
		})
	}
}

func TestHandleOrganizer(t *testing.T) {
	ts := newTestServer()
	ts.organizers.err = organizers.ErrPageNotFound

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/organizers/okand", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	ts.organizers.err = nil
	ts.organizers.view = organizers.PageView{
		Page:   models.OrganizerPage{Slug: "varbergs-teater", Name: "Varbergs Teater", IsPublished: true},
		Events: []models.EventDisplay{display("evt-1", "Hamlet", 8, models.CategoryScen)},
	}
	rr = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/organizers/varbergs-teater", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var view organizers.PageView
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Page.Slug != "varbergs-teater" || len(view.Events) != 1 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestHandleSchema(t *testing.T) {
	ts := newTestServer()

	for kind, want := range map[string]string{"local-business": "LocalBusiness", "faq": "FAQPage", "events": "ItemList"} {
		rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/schema/"+kind, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", kind, rr.Code)
		}
		var doc map[string]any
		if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
			t.Fatalf("%s: decode: %v", kind, err)
		}
		if doc["@type"] != want {
			t.Fatalf("%s: expected @type %s, got %v", kind, want, doc["@type"])
		}
	}

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/schema/recipe", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
