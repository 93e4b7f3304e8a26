package listing

import (
	"strconv"

	"github.com/sells-group/listings-api/internal/model"
	"github.com/sells-group/listings-api/internal/store"
	"github.com/sells-group/listings-api/pkg/attom"
)

// NormalizeInternal maps an internal store row into the unified schema.
// Total: every field has a defined mapping and nothing can fail.
func NormalizeInternal(p store.InternalProperty) model.UnifiedPropertyRecord {
	sourceID := strconv.FormatInt(p.ID, 10)

	status := p.Status
	if status == "" {
		status = "available"
	}

	return model.UnifiedPropertyRecord{
		ID:       model.RecordID(model.SourceInternal, sourceID),
		Source:   model.SourceInternal,
		SourceID: sourceID,

		StreetAddress: p.StreetAddress,
		Unit:          p.Unit,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		County:        p.County,

		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		SquareFeet:   p.SquareFeet,
		LotSize:      p.LotSize,
		YearBuilt:    p.YearBuilt,

		PurchasePrice:  p.PurchasePrice,
		ARV:            p.ARV,
		RepairEstimate: p.RepairEstimate,
		HoldingCosts:   p.HoldingCosts,
		AssignmentFee:  p.AssignmentFee,

		Status:    status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,

		Raw: map[string]any{string(model.SourceInternal): p},
	}
}

// NormalizeExternal maps a provider record into the unified schema. Finance
// fields stay absent: they are an internal-store concept. Missing upstream
// fields become absent optionals, never an error. The second return is
// false when the record carries no provider identifier and must be skipped.
func NormalizeExternal(p attom.Property) (model.UnifiedPropertyRecord, bool) {
	sourceID := p.Identifier.AttomID.String()
	if sourceID == "" {
		return model.UnifiedPropertyRecord{}, false
	}

	propertyType := p.Characteristics.Type
	if propertyType == "" {
		propertyType = "residential"
	}

	rec := model.UnifiedPropertyRecord{
		ID:       model.RecordID(model.SourceExternal, sourceID),
		Source:   model.SourceExternal,
		SourceID: sourceID,

		StreetAddress: p.Address.OneLine,
		Unit:          p.Address.UnitType,
		City:          p.Address.Locality,
		State:         p.Address.CountrySubd,
		ZipCode:       p.Address.Postal1,
		County:        p.Address.County,

		PropertyType: propertyType,
		Bedrooms:     p.Characteristics.Bedrooms,
		Bathrooms:    p.Characteristics.BathsTotal,
		SquareFeet:   p.Characteristics.UniversalSize,
		LotSize:      p.Lot.LotSize1,
		YearBuilt:    p.Characteristics.YearBuilt,

		Status: "available",
	}

	if len(p.Raw) > 0 {
		rec.Raw = map[string]any{string(model.SourceExternal): p.Raw}
	} else {
		rec.Raw = map[string]any{string(model.SourceExternal): p}
	}

	return rec, true
}

// NormalizeInternalBatch normalizes internal rows in order.
func NormalizeInternalBatch(rows []store.InternalProperty) []model.UnifiedPropertyRecord {
	out := make([]model.UnifiedPropertyRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, NormalizeInternal(row))
	}
	return out
}

// NormalizeExternalBatch normalizes provider records in order, skipping the
// ones that cannot be identified.
func NormalizeExternalBatch(props []attom.Property) []model.UnifiedPropertyRecord {
	out := make([]model.UnifiedPropertyRecord, 0, len(props))
	for _, p := range props {
		rec, ok := NormalizeExternal(p)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out
}
