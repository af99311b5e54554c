package tips

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission is the JSON body posted by the tip form.
type Submission struct {
	EventName      string   `json:"event_name"`
	DateTime       string   `json:"date_time"`
	EventLocation  string   `json:"event_location"`
	VenueName      string   `json:"venue_name,omitempty"`
	Description    string   `json:"description"`
	Categories     []string `json:"categories"`
	Category       string   `json:"category,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	WebsiteURL     string   `json:"website_url,omitempty"`
	SubmitterEmail string   `json:"submitter_email,omitempty"`
	SubmitterName  string   `json:"submitter_name,omitempty"`
}

// ValidationError is the first rule a submission broke. Message is shown
// to the submitter as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// User facing validation messages.
const (
	MsgRequired        = "Alla obligatoriska fält måste fyllas i"
	MsgNameLength      = "Namnet måste vara mellan 3 och 200 tecken"
	MsgDescription     = "Beskrivningen måste vara mellan 10 och 2000 tecken"
	MsgLocationLength  = "Platsen måste vara mellan 3 och 200 tecken"
	MsgNoCategory      = "Du måste välja minst en kategori"
	MsgTooManyCategory = "Du kan bara välja max 3 kategorier"
	MsgImageURL        = "Bild-URL:en är inte giltig"
	MsgWebsiteURL      = "Hemsida-URL:en är inte giltig"
	MsgEmail           = "Ogiltig e-postadress"
	MsgForbidden       = "Innehållet innehåller otillåten kod"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	forbiddenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)data:`),
		regexp.MustCompile(`(?i)vbscript:`),
	}

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("no_markup", func(fl validator.FieldLevel) bool {
		return !ContainsForbiddenContent(fl.Field().String())
	})
	return v
}

// ContainsForbiddenContent reports whether text matches one of the script
// injection patterns rejected by the tip form.
func ContainsForbiddenContent(text string) bool {
	for _, p := range forbiddenPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

type rule struct {
	field   string
	value   func(Submission) any
	tag     string
	message string
}

// rules run in order and the first failure wins.
var rules = []rule{
	{"event_name", func(s Submission) any { return s.EventName }, "required", MsgRequired},
	{"date_time", func(s Submission) any { return s.DateTime }, "required", MsgRequired},
	{"event_location", func(s Submission) any { return s.EventLocation }, "required", MsgRequired},
	{"description", func(s Submission) any { return s.Description }, "required", MsgRequired},
	{"event_name", func(s Submission) any { return strings.TrimSpace(s.EventName) }, "min=3,max=200", MsgNameLength},
	{"description", func(s Submission) any { return strings.TrimSpace(s.Description) }, "min=10,max=2000", MsgDescription},
	{"event_location", func(s Submission) any { return strings.TrimSpace(s.EventLocation) }, "min=3,max=200", MsgLocationLength},
	{"categories", func(s Submission) any { return s.Categories }, "min=1", MsgNoCategory},
	{"categories", func(s Submission) any { return s.Categories }, "max=3", MsgTooManyCategory},
	{"image_url", func(s Submission) any { return s.ImageURL }, "omitempty,url", MsgImageURL},
	{"website_url", func(s Submission) any { return s.WebsiteURL }, "omitempty,url", MsgWebsiteURL},
	{"submitter_email", func(s Submission) any { return s.SubmitterEmail }, "omitempty,simple_email", MsgEmail},
	{"content", func(s Submission) any {
		return s.EventName + " " + s.Description + " " + s.EventLocation
	}, "no_markup", MsgForbidden},
}

// Validate checks s and returns a *ValidationError for the first broken rule.
func Validate(s Submission) error {
	for _, r := range rules {
		err := validate.Var(r.value(s), r.tag)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		return &ValidationError{Field: r.field, Message: r.message}
	}
	return nil
}
