package schema

// PropertyImageTable represents the 'core.propertyimage' table
type PropertyImageTable struct {
	Table      string
	ID         string
	PropertyID string
	URL        string
	AltEn      string
	AltAr      string
	SortOrder  string
	CreatedAt  string
}

// PropertyImage is the schema definition for core.propertyimage
var PropertyImage = PropertyImageTable{
	Table:      "core.propertyimage",
	ID:         "id",
	PropertyID: "propertyid",
	URL:        "url",
	AltEn:      "alten",
	AltAr:      "altar",
	SortOrder:  "sortorder",
	CreatedAt:  "createdat",
}

func (t PropertyImageTable) Columns() []string {
	return []string{t.ID, t.PropertyID, t.URL, t.AltEn, t.AltAr, t.SortOrder, t.CreatedAt}
}
