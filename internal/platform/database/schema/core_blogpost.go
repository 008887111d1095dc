package schema

// BlogPostTable represents the 'core.blogpost' table
type BlogPostTable struct {
	Table       string
	ID          string
	Slug        string
	TitleEn     string
	TitleAr     string
	ExcerptEn   string
	ExcerptAr   string
	BodyEn      string
	BodyAr      string
	CoverURL    string
	AuthorID    string
	IsPublished string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// BlogPost is the schema definition for core.blogpost
var BlogPost = BlogPostTable{
	Table:       "core.blogpost",
	ID:          "id",
	Slug:        "slug",
	TitleEn:     "titleen",
	TitleAr:     "titlear",
	ExcerptEn:   "excerpten",
	ExcerptAr:   "excerptar",
	BodyEn:      "bodyen",
	BodyAr:      "bodyar",
	CoverURL:    "coverurl",
	AuthorID:    "authorid",
	IsPublished: "ispublished",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t BlogPostTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.TitleEn, t.TitleAr, t.ExcerptEn, t.ExcerptAr,
		t.BodyEn, t.BodyAr, t.CoverURL, t.AuthorID, t.IsPublished,
		t.PublishedAt, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
