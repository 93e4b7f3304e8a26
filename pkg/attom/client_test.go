package attom

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatp(v float64) *float64 { return &v }

const snapshotBody = `{
	"status": {"code": 0, "msg": "SuccessWithResult"},
	"property": [{
		"identifier": {"attomId": 9001, "apn": "00-123", "fips": "48113"},
		"address": {
			"oneLine": "1 Main St, Dallas, TX 75201",
			"locality": "Dallas",
			"countrySubd": "TX",
			"postal1": "75201",
			"county": "Dallas County"
		},
		"property": {"type": "sfr", "bedrooms": 3, "bathsTotal": 2.5, "universalSize": 1850, "yearBuilt": 1987},
		"lot": {"lotSize1": 0.21},
		"sale": {"amount": {"value": 410000}},
		"valuation": {"avm": {"amount": {"value": 250000}}}
	}]
}`

func newTestClient(srvURL string) Client {
	return New(Options{BaseURL: srvURL, APIKey: "test-key"})
}

func TestSearchProperties_Success(t *testing.T) {
	var gotPath string
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("APIKey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, snapshotBody)
	}))
	defer srv.Close()

	props, err := newTestClient(srv.URL).SearchProperties(context.Background(), Query{ZipCode: "75201"})
	require.NoError(t, err)
	require.Len(t, props, 1)

	assert.Equal(t, "/propertyapi/v1.0.0/property/snapshot", gotPath)
	assert.Equal(t, "test-key", gotHeader)

	p := props[0]
	assert.Equal(t, "9001", p.Identifier.AttomID.String())
	assert.Equal(t, "1 Main St, Dallas, TX 75201", p.Address.OneLine)
	assert.Equal(t, "Dallas", p.Address.Locality)
	require.NotNil(t, p.Characteristics.Bedrooms)
	assert.Equal(t, 3, *p.Characteristics.Bedrooms)
	require.NotNil(t, p.Valuation.AVM.Amount.Value)
	assert.Equal(t, 250000.0, *p.Valuation.AVM.Amount.Value)
	assert.NotEmpty(t, p.Raw)
}

func TestSearchProperties_MissingKey(t *testing.T) {
	c := New(Options{BaseURL: "http://unused"})
	_, err := c.SearchProperties(context.Background(), Query{ZipCode: "75201"})
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestSearchProperties_NoLocation(t *testing.T) {
	c := New(Options{BaseURL: "http://unused", APIKey: "k"})

	_, err := c.SearchProperties(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrNoLocation)

	// City without state is not enough.
	_, err = c.SearchProperties(context.Background(), Query{City: "Dallas"})
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestSearchProperties_NonZeroProviderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status": {"code": 1, "msg": "SuccessWithoutResult"}, "property": []}`)
	}))
	defer srv.Close()

	props, err := newTestClient(srv.URL).SearchProperties(context.Background(), Query{ZipCode: "99999"})
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestSearchProperties_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchProperties(context.Background(), Query{ZipCode: "75201"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSearchProperties_SkipsMalformedRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{
			"status": {"code": 0},
			"property": [
				{"identifier": "not-an-object"},
				{"identifier": {"attomId": 42}}
			]
		}`)
	}))
	defer srv.Close()

	props, err := newTestClient(srv.URL).SearchProperties(context.Background(), Query{ZipCode: "75201"})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "42", props[0].Identifier.AttomID.String())
}

func capturedParams(t *testing.T, q Query) url.Values {
	t.Helper()
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = io.WriteString(w, `{"status": {"code": 0}, "property": []}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchProperties(context.Background(), q)
	require.NoError(t, err)
	return got
}

func TestSearchProperties_RadiusClampedToProviderMax(t *testing.T) {
	params := capturedParams(t, Query{
		Latitude:  floatp(32.78),
		Longitude: floatp(-96.80),
		Radius:    floatp(50),
	})
	assert.Equal(t, "20", params.Get("radius"))
}

func TestSearchProperties_RadiusDefaultsWithoutValue(t *testing.T) {
	params := capturedParams(t, Query{
		Latitude:  floatp(32.78),
		Longitude: floatp(-96.80),
	})
	assert.Equal(t, "5", params.Get("radius"))
}

func TestSearchProperties_ParamMapping(t *testing.T) {
	params := capturedParams(t, Query{
		ZipCode:      "75201",
		City:         "Dallas",
		State:        "TX",
		PropertyType: "sfr",
		MinPrice:     floatp(100000),
		MaxPrice:     floatp(500000),
		PageSize:     250,
	})

	assert.Equal(t, "75201", params.Get("postalCode"))
	assert.Equal(t, "Dallas, TX", params.Get("address2"))
	assert.Equal(t, "sfr", params.Get("propertyType"))
	assert.Equal(t, "100000", params.Get("minMktTtlValue"))
	assert.Equal(t, "500000", params.Get("maxMktTtlValue"))
	// Page size is capped at the provider limit.
	assert.Equal(t, "100", params.Get("pageSize"))
	assert.Equal(t, "1", params.Get("page"))
}
