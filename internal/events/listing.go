package events

import (
	"sort"
	"time"

	"ivarberg/internal/calendar"
	"ivarberg/internal/categories"
	"ivarberg/internal/models"
)

// PageSize is the number of events per listing page.
const PageSize = 10

// Filter holds the listing selections. Date and Range are exclusive; when
// both are set Range wins.
type Filter struct {
	Categories []models.Category
	Date       *time.Time
	Range      *calendar.Range
}

// Empty reports whether no selection is active.
func (f Filter) Empty() bool {
	return len(f.Categories) == 0 && f.Date == nil && f.Range == nil
}

// Apply returns the events matching f, keeping input order.
func Apply(events []models.EventDisplay, f Filter) []models.EventDisplay {
	out := make([]models.EventDisplay, 0, len(events))
	for _, e := range events {
		if len(f.Categories) > 0 && !categories.HasAny(categoryView(e), f.Categories) {
			continue
		}
		switch {
		case f.Range != nil:
			if !calendar.NewRange(f.Range.Start, f.Range.End).Contains(e.Date) {
				continue
			}
		case f.Date != nil:
			if !calendar.SameDay(e.Date, *f.Date) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// categoryView carries the category fields of a display event back into the
// row shape the categories package works on.
func categoryView(e models.EventDisplay) models.Event {
	return models.Event{Category: e.Category, Categories: e.Categories}
}

// withBadges returns a copy of events whose card badge prefers a category
// from selected.
func withBadges(events []models.EventDisplay, selected []models.Category) []models.EventDisplay {
	out := make([]models.EventDisplay, len(events))
	for i, e := range events {
		e.BadgeCategory, e.ExtraCategories = categories.Badge(categoryView(e), selected)
		out[i] = e
	}
	return out
}

// Sort orders events featured first, then by start time with all-day
// events placed at noon. Equal keys keep their input order.
func Sort(events []models.EventDisplay) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		return calendar.SortKey(a.Date).Before(calendar.SortKey(b.Date))
	})
}

// Paginate returns the 1-based page of events. Pages out of range are empty.
func Paginate(events []models.EventDisplay, page, size int) []models.EventDisplay {
	// Compare page counts first so (page-1)*size cannot overflow.
	if page < 1 || size < 1 || page-1 >= TotalPages(len(events), size) {
		return []models.EventDisplay{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}

// TotalPages is the number of pages needed for n events.
func TotalPages(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}

// PageLinks lists the page numbers to render around current. A zero marks
// a gap between non-adjacent numbers.
func PageLinks(current, total int) []int {
	const maxVisible = 5

	links := []int{}
	if total <= maxVisible {
		for i := 1; i <= total; i++ {
			links = append(links, i)
		}
		return links
	}

	links = append(links, 1)
	if current > 3 {
		links = append(links, 0)
	}
	start := max(2, current-1)
	end := min(total-1, current+1)
	for i := start; i <= end; i++ {
		links = append(links, i)
	}
	if current < total-2 {
		links = append(links, 0)
	}
	links = append(links, total)
	return links
}

// Page is one rendered page of a listing.
type Page struct {
	Events     []models.EventDisplay `json:"events"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int                   `json:"total"`
	TotalPages int                   `json:"total_pages"`
	Links      []int                 `json:"links"`
	NoResults  bool                  `json:"no_results"`
}

// Listing tracks filter selections and the current page. Any change to the
// filter moves back to the first page.
type Listing struct {
	filter   Filter
	page     int
	pageSize int
}

// NewListing starts an unfiltered listing on page 1.
func NewListing(pageSize int) *Listing {
	if pageSize < 1 {
		pageSize = PageSize
	}
	return &Listing{page: 1, pageSize: pageSize}
}

// Filter returns the active selections.
func (l *Listing) Filter() Filter {
	return l.filter
}

// CurrentPage returns the page the listing is on.
func (l *Listing) CurrentPage() int {
	return l.page
}

// ToggleCategory adds c to the selection, or removes it when present.
func (l *Listing) ToggleCategory(c models.Category) {
	next := make([]models.Category, 0, len(l.filter.Categories)+1)
	removed := false
	for _, existing := range l.filter.Categories {
		if existing == c {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if !removed {
		next = append(next, c)
	}
	l.filter.Categories = next
	l.page = 1
}

// SetCategories replaces the category selection.
func (l *Listing) SetCategories(cs []models.Category) {
	l.filter.Categories = append([]models.Category(nil), cs...)
	l.page = 1
}

// SetDate selects a single day and clears any range. Nil clears the date.
func (l *Listing) SetDate(day *time.Time) {
	l.filter.Date = day
	if day != nil {
		l.filter.Range = nil
	}
	l.page = 1
}

// SetRange selects a span of days and clears any single day. Nil clears the range.
func (l *Listing) SetRange(r *calendar.Range) {
	l.filter.Range = r
	if r != nil {
		l.filter.Date = nil
	}
	l.page = 1
}

// Clear drops every selection.
func (l *Listing) Clear() {
	l.filter = Filter{}
	l.page = 1
}

// SetPage moves to page p, never below 1.
func (l *Listing) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	l.page = p
}

// Result filters, sorts and slices all into the current page.
func (l *Listing) Result(all []models.EventDisplay) Page {
	filtered := Apply(all, l.filter)
	Sort(filtered)

	total := len(filtered)
	totalPages := TotalPages(total, l.pageSize)
	return Page{
		Events:     withBadges(Paginate(filtered, l.page, l.pageSize), l.filter.Categories),
		Page:       l.page,
		PageSize:   l.pageSize,
		Total:      total,
		TotalPages: totalPages,
		Links:      PageLinks(l.page, totalPages),
		NoResults:  total == 0,
	}
}
