package store

import (
	"context"
	"time"
)

// MaxListRows caps a single internal listing query. The merge pipeline is
// request-scoped and never needs more than one page of source context.
const MaxListRows = 1000

// InternalProperty is a row from the internal property store in its native
// shape. Pointer fields are NULL-able columns.
type InternalProperty struct {
	ID             int64     `json:"id"`
	StreetAddress  string    `json:"street_address"`
	Unit           string    `json:"unit"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zip_code"`
	County         string    `json:"county"`
	PropertyType   string    `json:"property_type"`
	Bedrooms       *int      `json:"bedrooms,omitempty"`
	Bathrooms      *float64  `json:"bathrooms,omitempty"`
	SquareFeet     *int      `json:"square_feet,omitempty"`
	LotSize        *float64  `json:"lot_size,omitempty"`
	YearBuilt      *int      `json:"year_built,omitempty"`
	PurchasePrice  *float64  `json:"purchase_price,omitempty"`
	ARV            *float64  `json:"arv,omitempty"`
	RepairEstimate *float64  `json:"repair_estimate,omitempty"`
	HoldingCosts   *float64  `json:"holding_costs,omitempty"`
	AssignmentFee  *float64  `json:"assignment_fee,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InternalFilter specifies criteria for listing internal properties.
// Search is free text over street address, city, and state.
type InternalFilter struct {
	Search       string   `json:"search,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Limit        int      `json:"limit,omitempty"`
}

// Store defines the persistence interface for the internal property source.
type Store interface {
	ListProperties(ctx context.Context, filter InternalFilter) ([]InternalProperty, error)
	InsertProperty(ctx context.Context, p InternalProperty) (int64, error)
	CountProperties(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
