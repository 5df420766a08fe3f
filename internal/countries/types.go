// Package countries is the HTTP client for the country API backing the dashboard.
//
// The backend is an external collaborator: it synchronizes countries from an
// upstream source, lists the distinct regions it knows about, and lists
// countries filtered by free-text search and region. This package only
// consumes it.
package countries

// DefaultLimit is sent as the limit query parameter when a Filter leaves it unset.
const DefaultLimit = 250

// Country is one record returned by the backend. Every field except Name is
// optional; absent JSON fields decode to nil rather than a zero value.
type Country struct {
	Name       string   `json:"name"`
	ISOCode    string   `json:"iso_code,omitempty"`
	Capital    *string  `json:"capital,omitempty"`
	Region     *string  `json:"region,omitempty"`
	Subregion  *string  `json:"subregion,omitempty"`
	Population *int64   `json:"population,omitempty"`
	Area       *float64 `json:"area,omitempty"`
	FlagURL    *string  `json:"flag_url,omitempty"`
}

// Filter narrows a country listing. Empty Search and Region are omitted from
// the request entirely; Limit <= 0 means DefaultLimit.
type Filter struct {
	Search string
	Region string
	Limit  int
}

// SyncResult is the backend's answer to a sync trigger.
type SyncResult struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Total    int    `json:"total"`
}

// String returns a pointer to s. Handy for building fixtures.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int64) *int64 { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
