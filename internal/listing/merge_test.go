package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/listings-api/internal/model"
)

func rec(id string, source model.Source, street, city string) model.UnifiedPropertyRecord {
	return model.UnifiedPropertyRecord{
		ID:            id,
		Source:        source,
		StreetAddress: street,
		City:          city,
		State:         "TX",
		ZipCode:       "75201",
		Raw:           map[string]any{string(source): id},
	}
}

func TestDedupe_CollapsesSameAddressAcrossSources(t *testing.T) {
	in := []model.UnifiedPropertyRecord{
		rec("internal:1", model.SourceInternal, "1 Main St", "Dallas"),
		rec("external:9", model.SourceExternal, "1 main st", "dallas"),
	}

	out := Dedupe(in)
	require.Len(t, out, 1)

	// Internal was seen first and is kept; the external payload is attached.
	assert.Equal(t, "internal:1", out[0].ID)
	assert.Contains(t, out[0].Raw, "internal")
	assert.Contains(t, out[0].Raw, "external")
}

func TestDedupe_EmptyKeysNeverCollapse(t *testing.T) {
	in := []model.UnifiedPropertyRecord{
		{ID: "internal:1", Source: model.SourceInternal, City: "Dallas"},
		{ID: "external:2", Source: model.SourceExternal, City: "Dallas"},
		{ID: "external:3", Source: model.SourceExternal},
	}

	out := Dedupe(in)
	assert.Len(t, out, 3)
}

func TestDedupe_KeepsFirstSeenFields(t *testing.T) {
	first := rec("internal:1", model.SourceInternal, "1 Main St", "Dallas")
	first.PurchasePrice = floatp(200000)
	first.Bedrooms = intp(3)

	dup := rec("external:9", model.SourceExternal, "1 Main St", "Dallas")
	dup.Bedrooms = intp(4) // conflicting count from the provider

	out := Dedupe([]model.UnifiedPropertyRecord{first, dup})
	require.Len(t, out, 1)

	// First-kept wins on every non-raw field, financial and otherwise.
	assert.Equal(t, 200000.0, *out[0].PurchasePrice)
	assert.Equal(t, 3, *out[0].Bedrooms)
	assert.Equal(t, model.SourceInternal, out[0].Source)
}

func TestDedupe_RawNeverGainsSecondEntryPerSource(t *testing.T) {
	a := rec("external:1", model.SourceExternal, "1 Main St", "Dallas")
	b := rec("external:2", model.SourceExternal, "1 Main St", "Dallas")

	out := Dedupe([]model.UnifiedPropertyRecord{a, b})
	require.Len(t, out, 1)

	// The duplicate's payload must not replace the kept one.
	assert.Equal(t, "external:1", out[0].Raw["external"])
}

func TestDedupe_Idempotent(t *testing.T) {
	in := []model.UnifiedPropertyRecord{
		rec("internal:1", model.SourceInternal, "1 Main St", "Dallas"),
		rec("external:9", model.SourceExternal, "1 Main St", "Dallas"),
		rec("internal:2", model.SourceInternal, "2 Oak Ave", "Austin"),
		{ID: "external:3", Source: model.SourceExternal},
	}

	once := Dedupe(in)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupe_OutputNeverLongerThanInput(t *testing.T) {
	in := []model.UnifiedPropertyRecord{
		rec("internal:1", model.SourceInternal, "1 Main St", "Dallas"),
		rec("internal:2", model.SourceInternal, "2 Oak Ave", "Dallas"),
		rec("external:3", model.SourceExternal, "1 Main St", "Dallas"),
	}
	out := Dedupe(in)
	assert.LessOrEqual(t, len(out), len(in))
	assert.Len(t, out, 2)
}
