// Package source defines the adapters the merge pipeline pulls property
// records from. Adapters return records in their source-native shape;
// normalization happens downstream.
package source

import (
	"context"

	"github.com/sells-group/listings-api/internal/model"
	"github.com/sells-group/listings-api/internal/store"
	"github.com/sells-group/listings-api/pkg/attom"
)

// InternalSource queries the local property store.
type InternalSource interface {
	Fetch(ctx context.Context, q model.SearchQuery) ([]store.InternalProperty, error)
}

// ExternalSource queries the third-party property provider. An empty result
// with a nil error means the query had nothing the provider can search on.
type ExternalSource interface {
	Fetch(ctx context.Context, q model.SearchQuery) ([]attom.Property, error)
}
