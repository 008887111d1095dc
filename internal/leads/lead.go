package leads

import "time"

// Lead is a buyer inquiry captured from the public site, optionally tied to
// a specific listing.
type Lead struct {
	ID         string    `json:"id"`
	PropertyID *string   `json:"property_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    string    `json:"message"`
	Locale     string    `json:"locale"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Follow-up statuses, advanced by the sales team in the back-office.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusClosed    = "closed"
)

// Global field names for validation
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldMessage    = "message"
	FieldLocale     = "locale"
	FieldStatus     = "status"
	FieldPropertyID = "property_id"
)
