// Package listing implements the combined property listing pipeline:
// fetch from both sources, normalize, deduplicate by canonical address,
// sort, and paginate. All state is request-scoped.
package listing

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/listings-api/internal/model"
	"github.com/sells-group/listings-api/internal/source"
	"github.com/sells-group/listings-api/internal/store"
	"github.com/sells-group/listings-api/pkg/attom"
)

// Service runs the merge pipeline over injected source adapters.
type Service struct {
	internal source.InternalSource
	external source.ExternalSource
}

// NewService creates a Service with the given adapters.
func NewService(internal source.InternalSource, external source.ExternalSource) *Service {
	return &Service{internal: internal, external: external}
}

// Search executes one combined listing request. The two adapters are
// queried concurrently; a failure in either degrades to zero rows from
// that source. Only when both sources fail does Search return an error.
func (s *Service) Search(ctx context.Context, q model.SearchQuery) (*model.PageResult, error) {
	q.Clamp()

	var (
		internalRows []store.InternalProperty
		externalRows []attom.Property
		internalErr  error
		externalErr  error
	)

	// Neither fetch depends on the other, and neither failure may cancel
	// the sibling, so both goroutines always return nil.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		internalRows, internalErr = s.internal.Fetch(gctx, q)
		return nil
	})
	g.Go(func() error {
		externalRows, externalErr = s.external.Fetch(gctx, q)
		return nil
	})
	_ = g.Wait()

	if internalErr != nil {
		zap.L().Warn("listing: internal source unavailable, degrading",
			zap.Error(internalErr),
		)
	}
	if externalErr != nil {
		zap.L().Warn("listing: external source unavailable, degrading",
			zap.Error(externalErr),
		)
	}
	if internalErr != nil && externalErr != nil {
		return nil, ErrAllSourcesUnavailable
	}

	// Internal records are normalized first so a cross-source duplicate
	// keeps the internal row.
	unified := NormalizeInternalBatch(internalRows)
	unified = append(unified, NormalizeExternalBatch(externalRows)...)

	merged := Dedupe(unified)
	SortRecords(merged)
	result := Paginate(merged, q.Page, q.Limit, q.IncludeRaw)

	zap.L().Debug("listing: combined search complete",
		zap.Int("internal", len(internalRows)),
		zap.Int("external", len(externalRows)),
		zap.Int("merged", len(merged)),
		zap.Int("page_items", len(result.Properties)),
	)

	return &result, nil
}
