package models

// OrganizerPage is a published landing page for an organizer.
type OrganizerPage struct {
	ID             int64       `json:"id"`
	Slug           string      `json:"slug"`
	Name           string      `json:"name"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Content        string      `json:"content"`
	HeroImageURL   string      `json:"hero_image_url"`
	GalleryImages  []string    `json:"gallery_images"`
	OrganizerID    *int64      `json:"organizer_id"`
	ContactInfo    ContactInfo `json:"contact_info"`
	SocialLinks    SocialLinks `json:"social_links"`
	SEOTitle       string      `json:"seo_title"`
	SEODescription string      `json:"seo_description"`
	SEOKeywords    string      `json:"seo_keywords"`
	IsPublished    bool        `json:"is_published"`
}

// ContactInfo holds optional contact fields of an organizer page.
type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`
}

// SocialLinks holds optional social media links of an organizer page.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}
