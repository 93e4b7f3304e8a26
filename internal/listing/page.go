package listing

import (
	"sort"

	"github.com/sells-group/listings-api/internal/model"
)

// sourceRank orders internal records before external ones: the internal
// store is authoritative for ties on locality.
func sourceRank(s model.Source) int {
	if s == model.SourceInternal {
		return 0
	}
	return 1
}

// SortRecords imposes the deterministic output order: source rank, then
// city, then street address, ascending. Stable, so equal keys keep their
// merge order.
func SortRecords(records []model.UnifiedPropertyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if ra, rb := sourceRank(a.Source), sourceRank(b.Source); ra != rb {
			return ra < rb
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.StreetAddress < b.StreetAddress
	})
}

// Paginate slices the sorted list by 1-based page and limit. Callers pass
// already-clamped values. When includeRaw is false the raw payloads are
// stripped from the returned page only, never from the full list, so
// stripping cannot affect dedup or sort.
func Paginate(records []model.UnifiedPropertyRecord, page, limit int, includeRaw bool) model.PageResult {
	total := len(records)

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]model.UnifiedPropertyRecord, end-start)
	copy(items, records[start:end])
	if !includeRaw {
		for i := range items {
			items[i].Raw = nil
		}
	}

	return model.PageResult{
		Properties: items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		HasNext:    end < total,
		HasPrev:    start > 0,
	}
}
