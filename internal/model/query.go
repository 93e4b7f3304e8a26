package model

// Pagination and radius bounds. Out-of-range request values are clamped
// rather than rejected to keep the endpoint permissive.
const (
	MinPage       = 1
	MinLimit      = 1
	MaxLimit      = 100
	DefaultLimit  = 20
	MaxRadius     = 20
	DefaultRadius = 5
)

// SearchQuery carries every filter the combined listing endpoint accepts.
// Free text and price bounds apply to the internal store only; location
// filters drive the external provider.
type SearchQuery struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`

	Search       string   `json:"search,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`

	ZipCode string   `json:"zipcode,omitempty"`
	City    string   `json:"city,omitempty"`
	State   string   `json:"state,omitempty"`
	Lat     *float64 `json:"latitude,omitempty"`
	Long    *float64 `json:"longitude,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`

	IncludeRaw bool `json:"include_raw"`
}

// Clamp normalizes page, limit, and radius into their allowed ranges.
func (q *SearchQuery) Clamp() {
	if q.Page < MinPage {
		q.Page = MinPage
	}
	if q.Limit < MinLimit {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Radius != nil {
		r := *q.Radius
		if r > MaxRadius {
			r = MaxRadius
		}
		if r < 0 {
			r = 0
		}
		q.Radius = &r
	}
}

// HasLocation reports whether the query holds any location input the
// external provider can search on.
func (q SearchQuery) HasLocation() bool {
	if q.ZipCode != "" {
		return true
	}
	if q.City != "" && q.State != "" {
		return true
	}
	return q.Lat != nil && q.Long != nil
}
