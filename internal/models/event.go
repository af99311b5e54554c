package models

import "time"

// Category is one of the fixed event categories shown on the site.
type Category string

const (
	CategoryScen             Category = "Scen"
	CategoryNattliv          Category = "Nattliv"
	CategorySport            Category = "Sport"
	CategoryUtstallningar    Category = "Utställningar"
	CategoryKonst            Category = "Konst"
	CategoryForelasningar    Category = "Föreläsningar"
	CategoryBarnFamilj       Category = "Barn & Familj"
	CategoryMatDryck         Category = "Mat & Dryck"
	CategoryJul              Category = "Jul"
	CategoryFilmBio          Category = "Film & bio"
	CategoryDjurNatur        Category = "Djur & Natur"
	CategoryGuidadeVisningar Category = "Guidade visningar"
	CategoryMarknader        Category = "Marknader"

	// CategoryUncategorized is returned when a row carries no category at all.
	CategoryUncategorized Category = "Okategoriserad"
)

// MaxCategories bounds the category list of a single event.
const MaxCategories = 3

// Status is the publishing state of an event row.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusPublished       Status = "published"
	StatusCancelled       Status = "cancelled"
)

// DescriptionFormat tells how an event description should be rendered.
type DescriptionFormat string

const (
	FormatMarkdown DescriptionFormat = "markdown"
	FormatPlain    DescriptionFormat = "plain"
)

// Event is a row of the events table.
type Event struct {
	ID                int64              `json:"id"`
	EventID           string             `json:"event_id"`
	Name              string             `json:"name"`
	Category          Category           `json:"category,omitempty"`   // legacy single category
	Categories        []Category         `json:"categories,omitempty"` // ordered by relevance
	CategoryScores    map[string]float64 `json:"category_scores,omitempty"`
	DateTime          time.Time          `json:"date_time"` // Europe/Stockholm
	Location          string             `json:"location"`
	VenueName         *string            `json:"venue_name,omitempty"`
	Price             *string            `json:"price,omitempty"`
	ImageURL          *string            `json:"image_url,omitempty"`
	Description       *string            `json:"description,omitempty"`
	DescriptionFormat DescriptionFormat  `json:"description_format,omitempty"`
	OrganizerEventURL *string            `json:"organizer_event_url,omitempty"`
	Featured          bool               `json:"featured"`
	Status            Status             `json:"status"`
	MaxParticipants   *int               `json:"max_participants,omitempty"`
	Tags              []string           `json:"tags,omitempty"`
	OrganizerID       *int64             `json:"organizer_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         *time.Time         `json:"updated_at,omitempty"`

	// Populated from the organizers relation
	Organizer *Organizer `json:"organizer,omitempty"`
}

// Organizer is a row of the organizers table.
type Organizer struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// Ordering selects how event queries are sorted.
type Ordering int

const (
	// OrderFeaturedFirst sorts featured events first, then by start time.
	OrderFeaturedFirst Ordering = iota
	// OrderChronological sorts by start time only.
	OrderChronological
)

// EventQuery describes a read against the events table.
type EventQuery struct {
	Status        Status
	From          *time.Time // inclusive
	To            *time.Time // inclusive
	Category      Category
	OrganizerID   *int64
	OrganizerName string
	Search        string
	ExcludeID     string
	FeaturedOnly  bool
	Order         Ordering
	Limit         int
}

// Describe returns a short human readable summary used in log lines.
func (q EventQuery) Describe() string {
	switch {
	case q.Search != "":
		return "search"
	case q.Category != "" && q.ExcludeID != "":
		return "similar"
	case q.Category != "":
		return "category"
	case q.OrganizerID != nil:
		return "organizer"
	case q.OrganizerName != "":
		return "organizer_name"
	case q.FeaturedOnly:
		return "featured"
	case q.To != nil:
		return "date_range"
	default:
		return "published"
	}
}
