package source

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/listings-api/internal/model"
	"github.com/sells-group/listings-api/pkg/attom"
)

// AttomSource adapts the provider client to the ExternalSource interface.
type AttomSource struct {
	client attom.Client
}

// NewAttomSource wraps a provider client as an external source adapter.
func NewAttomSource(c attom.Client) *AttomSource {
	return &AttomSource{client: c}
}

// Fetch searches the provider with the query's location and property
// filters. Queries without location input yield zero external rows without
// a call; provider failures surface as errors the pipeline degrades on.
func (s *AttomSource) Fetch(ctx context.Context, q model.SearchQuery) ([]attom.Property, error) {
	if !q.HasLocation() {
		return nil, nil
	}

	props, err := s.client.SearchProperties(ctx, attom.Query{
		ZipCode:      q.ZipCode,
		City:         q.City,
		State:        q.State,
		PropertyType: q.PropertyType,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		Latitude:     q.Lat,
		Longitude:    q.Long,
		Radius:       q.Radius,
	})
	if err != nil {
		return nil, eris.Wrap(err, "source: external provider")
	}
	return props, nil
}
