package favorites

import "time"

// Favorite links an authenticated user to a saved listing. The pair is
// unique per user.
type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldPropertyID = "property_id"
)
