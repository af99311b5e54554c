// Package categories normalizes the legacy single category field and the
// ranked category list into one view.
package categories

import (
	"strings"

	"ivarberg/internal/models"
)

// Catalogue lists the selectable categories in display order.
var Catalogue = []models.Category{
	models.CategoryScen,
	models.CategoryNattliv,
	models.CategorySport,
	models.CategoryUtstallningar,
	models.CategoryKonst,
	models.CategoryForelasningar,
	models.CategoryBarnFamilj,
	models.CategoryMatDryck,
	models.CategoryJul,
	models.CategoryFilmBio,
	models.CategoryDjurNatur,
	models.CategoryGuidadeVisningar,
	models.CategoryMarknader,
}

// Known reports whether c is part of the catalogue.
func Known(c models.Category) bool {
	for _, k := range Catalogue {
		if k == c {
			return true
		}
	}
	return false
}

// Main returns the most relevant category of e.
func Main(e models.Event) models.Category {
	if all := All(e); len(all) > 0 {
		return all[0]
	}
	return models.CategoryUncategorized
}

// Has reports whether e belongs to c under either representation.
func Has(e models.Event, c models.Category) bool {
	if c == "" {
		return false
	}
	for _, cat := range e.Categories {
		if cat == c {
			return true
		}
	}
	return e.Category == c
}

// HasAny reports whether e belongs to at least one of cs.
func HasAny(e models.Event, cs []models.Category) bool {
	for _, c := range cs {
		if Has(e, c) {
			return true
		}
	}
	return false
}

// All returns the category list of e, falling back to the legacy field.
// The result keeps the source order and holds no duplicates.
func All(e models.Event) []models.Category {
	if list := Dedupe(e.Categories); len(list) > 0 {
		return list
	}
	if c := models.Category(strings.TrimSpace(string(e.Category))); c != "" {
		return []models.Category{c}
	}
	return nil
}

// Backfill fills an empty category list from the legacy field and keeps the
// legacy field in step with the main category.
func Backfill(e models.Event) models.Event {
	all := All(e)
	e.Categories = all
	if len(all) > 0 {
		e.Category = all[0]
	}
	return e
}

// Dedupe drops blanks and repeats while keeping the first occurrence order.
func Dedupe(cs []models.Category) []models.Category {
	if len(cs) == 0 {
		return nil
	}
	seen := make(map[models.Category]struct{}, len(cs))
	out := make([]models.Category, 0, len(cs))
	for _, c := range cs {
		c = models.Category(strings.TrimSpace(string(c)))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ExtraCount is the number shown in a "+N" badge next to the main category.
// When an active filter matches one of the event's categories that category
// is shown instead of the main one, and the count is still total minus one.
func ExtraCount(e models.Event) int {
	n := len(All(e)) - 1
	if n < 0 {
		return 0
	}
	return n
}

// Badge picks the category to show on a card given the active filter and
// returns it with the count of remaining categories.
func Badge(e models.Event, selected []models.Category) (models.Category, int) {
	for _, c := range All(e) {
		for _, s := range selected {
			if c == s {
				return c, ExtraCount(e)
			}
		}
	}
	return Main(e), ExtraCount(e)
}
