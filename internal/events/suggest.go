package events

import (
	"strings"

	"ivarberg/internal/models"
)

// Suggestion kinds.
const (
	SuggestEvent    = "event"
	SuggestCategory = "category"
	SuggestVenue    = "venue"
)

// Suggestion is a search-as-you-type hint.
type Suggestion struct {
	Text    string `json:"text"`
	Kind    string `json:"kind"`
	EventID string `json:"event_id,omitempty"`
}

// Suggest matches term case-insensitively against event titles, categories
// and venues. Prefix matches come before substring matches; within each
// group input order is kept. Repeated texts of the same kind are dropped.
func Suggest(events []models.EventDisplay, term string, limit int) []Suggestion {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || limit < 1 {
		return []Suggestion{}
	}

	var prefix, contains []Suggestion
	seen := map[string]struct{}{}
	consider := func(s Suggestion) {
		text := strings.ToLower(s.Text)
		if text == "" {
			return
		}
		key := s.Kind + "\x00" + text
		if _, ok := seen[key]; ok {
			return
		}
		switch {
		case strings.HasPrefix(text, needle) || hasWordPrefix(text, needle):
			prefix = append(prefix, s)
		case strings.Contains(text, needle):
			contains = append(contains, s)
		default:
			return
		}
		seen[key] = struct{}{}
	}

	for _, e := range events {
		consider(Suggestion{Text: e.Title, Kind: SuggestEvent, EventID: e.ID})
	}
	for _, e := range events {
		for _, c := range e.Categories {
			consider(Suggestion{Text: string(c), Kind: SuggestCategory})
		}
	}
	for _, e := range events {
		consider(Suggestion{Text: e.Location.Primary(), Kind: SuggestVenue})
	}

	out := append(prefix, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []Suggestion{}
	}
	return out
}

func hasWordPrefix(text, needle string) bool {
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, needle) {
			return true
		}
	}
	return false
}
