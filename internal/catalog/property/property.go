package property

import "time"

// Property is a bilingual real-estate listing. English and Arabic text live
// side by side in dedicated columns; the frontend picks by locale.
type Property struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	TitleEn       string     `json:"title_en"`
	TitleAr       string     `json:"title_ar"`
	DescriptionEn string     `json:"description_en"`
	DescriptionAr string     `json:"description_ar"`
	LocationEn    string     `json:"location_en"`
	LocationAr    string     `json:"location_ar"`
	Price         float64    `json:"price"`
	Currency      string     `json:"currency"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	AreaSqm       float64    `json:"area_sqm"`
	PropertyType  string     `json:"property_type"`
	Status        string     `json:"status"`
	IsPublished   bool       `json:"is_published"`
	Images        []Image    `json:"images,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-"` // soft-delete tracker
}

// Image is a gallery entry attached to a listing, ordered by SortOrder.
type Image struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	URL        string    `json:"url"`
	AltEn      string    `json:"alt_en"`
	AltAr      string    `json:"alt_ar"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// Listing statuses
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
	StatusRented    = "rented"
)

// Property types
const (
	TypeApartment = "apartment"
	TypeVilla     = "villa"
	TypeTownhouse = "townhouse"
	TypeOffice    = "office"
	TypeLand      = "land"
)

// Global field names for validation
const (
	FieldTitleEn       = "title_en"
	FieldTitleAr       = "title_ar"
	FieldDescriptionEn = "description_en"
	FieldDescriptionAr = "description_ar"
	FieldLocationEn    = "location_en"
	FieldLocationAr    = "location_ar"
	FieldPrice         = "price"
	FieldCurrency      = "currency"
	FieldPropertyType  = "property_type"
	FieldStatus        = "status"
	FieldImageURL      = "url"
	FieldSortOrder     = "sort_order"
)
