package schema

// LeadTable represents the 'core.lead' table
type LeadTable struct {
	Table      string
	ID         string
	PropertyID string
	Name       string
	Email      string
	Phone      string
	Message    string
	Locale     string
	Status     string
	CreatedAt  string
	UpdatedAt  string
}

// Lead is the schema definition for core.lead
var Lead = LeadTable{
	Table:      "core.lead",
	ID:         "id",
	PropertyID: "propertyid",
	Name:       "name",
	Email:      "email",
	Phone:      "phone",
	Message:    "message",
	Locale:     "locale",
	Status:     "status",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t LeadTable) Columns() []string {
	return []string{
		t.ID, t.PropertyID, t.Name, t.Email, t.Phone, t.Message,
		t.Locale, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
