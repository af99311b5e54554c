package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"ivarberg/internal/models"
	"ivarberg/internal/organizers"
)

var _ organizers.Store = (*Store)(nil)

const pageSelect = `
		SELECT id, slug, name, COALESCE(title, ''), COALESCE(description, ''), COALESCE(content, ''),
			COALESCE(hero_image_url, ''), gallery_images, organizer_id, contact_info, social_links,
			COALESCE(seo_title, ''), COALESCE(seo_description, ''), COALESCE(seo_keywords, ''), is_published
		FROM organizer_pages
	`

// PageBySlug returns the published page with slug.
func (s *Store) PageBySlug(ctx context.Context, slug string) (models.OrganizerPage, error) {
	row := s.db.QueryRowContext(ctx, pageSelect+`WHERE slug = $1 AND is_published = TRUE`, slug)

	page, err := scanPage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OrganizerPage{}, organizers.ErrPageNotFound
		}
		return models.OrganizerPage{}, err
	}
	return page, nil
}

// ListPages returns all published pages ordered by name.
func (s *Store) ListPages(ctx context.Context) ([]models.OrganizerPage, error) {
	rows, err := s.db.QueryContext(ctx, pageSelect+`WHERE is_published = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("select organizer pages: %w", err)
	}
	defer rows.Close()

	pages := []models.OrganizerPage{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organizer pages: %w", err)
	}
	return pages, nil
}

func scanPage(row rowScanner) (models.OrganizerPage, error) {
	var (
		p           models.OrganizerPage
		gallery     []string
		organizerID sql.NullInt64
		contact     []byte
		social      []byte
	)

	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Title, &p.Description, &p.Content,
		&p.HeroImageURL, pq.Array(&gallery), &organizerID, &contact, &social,
		&p.SEOTitle, &p.SEODescription, &p.SEOKeywords, &p.IsPublished,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OrganizerPage{}, err
		}
		return models.OrganizerPage{}, fmt.Errorf("scan organizer page: %w", err)
	}

	p.GalleryImages = gallery
	if organizerID.Valid {
		v := organizerID.Int64
		p.OrganizerID = &v
	}
	if len(contact) > 0 {
		if err := json.Unmarshal(contact, &p.ContactInfo); err != nil {
			return models.OrganizerPage{}, fmt.Errorf("decode contact info: %w", err)
		}
	}
	if len(social) > 0 {
		if err := json.Unmarshal(social, &p.SocialLinks); err != nil {
			return models.OrganizerPage{}, fmt.Errorf("decode social links: %w", err)
		}
	}
	return p, nil
}
