package schema

// PropertyTable represents the 'core.property' table
type PropertyTable struct {
	Table         string
	ID            string
	Slug          string
	TitleEn       string
	TitleAr       string
	DescriptionEn string
	DescriptionAr string
	LocationEn    string
	LocationAr    string
	Price         string
	Currency      string
	Bedrooms      string
	Bathrooms     string
	AreaSqm       string
	PropertyType  string
	Status        string
	IsPublished   string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// Property is the schema definition for core.property
var Property = PropertyTable{
	Table:         "core.property",
	ID:            "id",
	Slug:          "slug",
	TitleEn:       "titleen",
	TitleAr:       "titlear",
	DescriptionEn: "descriptionen",
	DescriptionAr: "descriptionar",
	LocationEn:    "locationen",
	LocationAr:    "locationar",
	Price:         "price",
	Currency:      "currency",
	Bedrooms:      "bedrooms",
	Bathrooms:     "bathrooms",
	AreaSqm:       "areasqm",
	PropertyType:  "propertytype",
	Status:        "status",
	IsPublished:   "ispublished",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

// Columns returns all standard column names
func (t PropertyTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.TitleEn, t.TitleAr, t.DescriptionEn, t.DescriptionAr,
		t.LocationEn, t.LocationAr, t.Price, t.Currency, t.Bedrooms,
		t.Bathrooms, t.AreaSqm, t.PropertyType, t.Status, t.IsPublished,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
