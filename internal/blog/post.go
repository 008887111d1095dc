package blog

import "time"

// Post is a bilingual editorial article for the public site.
type Post struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	TitleEn     string     `json:"title_en"`
	TitleAr     string     `json:"title_ar"`
	ExcerptEn   string     `json:"excerpt_en"`
	ExcerptAr   string     `json:"excerpt_ar"`
	BodyEn      string     `json:"body_en"`
	BodyAr      string     `json:"body_ar"`
	CoverURL    string     `json:"cover_url"`
	AuthorID    string     `json:"author_id"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// Global field names for validation
const (
	FieldTitleEn   = "title_en"
	FieldTitleAr   = "title_ar"
	FieldExcerptEn = "excerpt_en"
	FieldExcerptAr = "excerpt_ar"
	FieldBodyEn    = "body_en"
	FieldBodyAr    = "body_ar"
	FieldCoverURL  = "cover_url"
)
