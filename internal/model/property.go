package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Source identifies where a property record originated.
type Source string

const (
	SourceInternal Source = "internal"
	SourceExternal Source = "external"
)

// UnifiedPropertyRecord is the common schema both sources normalize into.
// Location fields are always present (empty string when unknown) so key
// construction stays total; numeric property fields are pointers because
// "absent" and "zero" must not compare equal across sources.
type UnifiedPropertyRecord struct {
	ID       string `json:"id"`
	Source   Source `json:"source"`
	SourceID string `json:"source_id"`

	StreetAddress string `json:"street_address"`
	Unit          string `json:"unit"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	County        string `json:"county"`

	PropertyType string   `json:"property_type,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	SquareFeet   *int     `json:"square_feet,omitempty"`
	LotSize      *float64 `json:"lot_size,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty"`

	// Finance fields are an internal-store concept; the external provider
	// never reports them.
	PurchasePrice  *float64 `json:"purchase_price,omitempty"`
	ARV            *float64 `json:"arv,omitempty"`
	RepairEstimate *float64 `json:"repair_estimate,omitempty"`
	HoldingCosts   *float64 `json:"holding_costs,omitempty"`
	AssignmentFee  *float64 `json:"assignment_fee,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`

	// Raw maps source name to that source's original payload. After merge it
	// holds at most one entry per source and is only ever extended, never
	// rewritten.
	Raw map[string]any `json:"raw,omitempty"`
}

// RecordID builds the globally unique id "{source}:{source_id}".
func RecordID(source Source, sourceID string) string {
	return fmt.Sprintf("%s:%s", source, sourceID)
}

// asciiFold strips combining marks so accented and plain spellings of the
// same street produce the same key.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalKey derives the address identity used for cross-source
// deduplication: the uppercased, trimmed "street|city|state|zip"
// concatenation. A record with no street address yields the empty key,
// which carries no identifying information and is never merged on.
// Total over any field contents.
func (r UnifiedPropertyRecord) CanonicalKey() string {
	street := canonField(r.StreetAddress)
	if street == "" {
		return ""
	}
	return strings.Join([]string{
		street,
		canonField(r.City),
		canonField(r.State),
		canonField(r.ZipCode),
	}, "|")
}

func canonField(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		return s
	}
	return folded
}

// PageResult is the paginated output of one combined listing request.
type PageResult struct {
	Properties []UnifiedPropertyRecord `json:"properties"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	HasNext    bool                    `json:"has_next"`
	HasPrev    bool                    `json:"has_prev"`
}
