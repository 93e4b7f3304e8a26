package attom

import "encoding/json"

// snapshotResponse is the provider's search envelope. Property elements are
// kept raw so one malformed element can be skipped without losing the batch.
type snapshotResponse struct {
	Status   responseStatus    `json:"status"`
	Property []json.RawMessage `json:"property"`
}

type responseStatus struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Property is one provider record in its native nested shape. Pointer
// fields distinguish absent from zero. Raw holds the element verbatim for
// downstream traceability.
type Property struct {
	Identifier      Identifier `json:"identifier"`
	Address         Address    `json:"address"`
	Characteristics Block      `json:"property"`
	Lot             Lot        `json:"lot"`
	Sale            Sale       `json:"sale"`
	Valuation       Valuation  `json:"valuation"`
	Owner           Owner      `json:"owner"`

	Raw json.RawMessage `json:"-"`
}

// Identifier holds the provider's record identifiers.
type Identifier struct {
	AttomID json.Number `json:"attomId"`
	APN     string      `json:"apn"`
	FIPS    string      `json:"fips"`
}

// Address is the provider's top-level address block.
type Address struct {
	OneLine     string `json:"oneLine"`
	UnitType    string `json:"unitType"`
	Locality    string `json:"locality"`
	CountrySubd string `json:"countrySubd"`
	Postal1     string `json:"postal1"`
	County      string `json:"county"`
}

// Block is the provider's property-characteristics block.
type Block struct {
	Type          string   `json:"type"`
	Bedrooms      *int     `json:"bedrooms"`
	BathsTotal    *float64 `json:"bathsTotal"`
	UniversalSize *int     `json:"universalSize"`
	YearBuilt     *int     `json:"yearBuilt"`
}

// Lot is the provider's lot block.
type Lot struct {
	LotSize1 *float64 `json:"lotSize1"`
}

// Sale is the provider's last-sale block.
type Sale struct {
	Amount Amount `json:"amount"`
}

// Amount wraps a monetary value.
type Amount struct {
	Value *float64 `json:"value"`
}

// Valuation is the provider's valuation block; AVM is its automated model
// estimate.
type Valuation struct {
	AVM AVM `json:"avm"`
}

// AVM holds the automated valuation amount.
type AVM struct {
	Amount Amount `json:"amount"`
}

// Owner is the provider's owner block.
type Owner struct {
	Name string `json:"name"`
}
