package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"ivarberg/internal/organizers"
)

var pageColumns = []string{
	"id", "slug", "name", "title", "description", "content", "hero_image_url", "gallery_images",
	"organizer_id", "contact_info", "social_links", "seo_title", "seo_description", "seo_keywords", "is_published",
}

func TestPageBySlug(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM organizer_pages
		WHERE slug = $1 AND is_published = TRUE`)).
		WithArgs("varbergs-teater").
		WillReturnRows(sqlmock.NewRows(pageColumns).AddRow(
			int64(1), "varbergs-teater", "Varbergs Teater", "Scenkonst", "Teater i centrum", "", "",
			"{a.jpg,b.jpg}", int64(7), []byte(`{"email":"info@teater.example","phone":"0340-123"}`), nil,
			"", "", "", true,
		))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE slug = $1`)).
		WithArgs("saknas").
		WillReturnRows(sqlmock.NewRows(pageColumns))

	page, err := s.PageBySlug(context.Background(), "varbergs-teater")
	if err != nil {
		t.Fatalf("PageBySlug error: %v", err)
	}
	if page.OrganizerID == nil || *page.OrganizerID != 7 {
		t.Fatalf("unexpected organizer id %v", page.OrganizerID)
	}
	if len(page.GalleryImages) != 2 || page.ContactInfo.Phone != "0340-123" {
		t.Fatalf("unexpected page %+v", page)
	}

	if _, err := s.PageBySlug(context.Background(), "saknas"); !errors.Is(err, organizers.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestListPages(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE is_published = TRUE ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows(pageColumns).
			AddRow(int64(1), "a", "A", "", "", "", "", nil, nil, nil, nil, "", "", "", true).
			AddRow(int64(2), "b", "B", "", "", "", "", nil, nil, nil, nil, "", "", "", true))

	pages, err := s.ListPages(context.Background())
	if err != nil {
		t.Fatalf("ListPages error: %v", err)
	}
	if len(pages) != 2 || pages[1].Slug != "b" {
		t.Fatalf("unexpected pages %+v", pages)
	}
}
