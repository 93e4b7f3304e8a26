package source

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/listings-api/internal/model"
	"github.com/sells-group/listings-api/internal/store"
)

// StoreSource adapts the internal property store to the InternalSource
// interface.
type StoreSource struct {
	store store.Store
}

// NewStoreSource wraps a store as an internal source adapter.
func NewStoreSource(st store.Store) *StoreSource {
	return &StoreSource{store: st}
}

// Fetch lists internal rows matching the query's internal-side filters.
// Store unreachability surfaces as an error the pipeline degrades on.
func (s *StoreSource) Fetch(ctx context.Context, q model.SearchQuery) ([]store.InternalProperty, error) {
	rows, err := s.store.ListProperties(ctx, store.InternalFilter{
		Search:       q.Search,
		PropertyType: q.PropertyType,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		Limit:        store.MaxListRows,
	})
	if err != nil {
		return nil, eris.Wrap(err, "source: internal store")
	}
	return rows, nil
}
