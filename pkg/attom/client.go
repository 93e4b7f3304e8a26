// Package attom wraps the property-data provider's snapshot search API.
package attom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.gateway.attomdata.com"
	snapshotPath   = "/propertyapi/v1.0.0/property/snapshot"

	// MaxRadius is the provider's radius-search ceiling; larger values are
	// clamped before the call.
	MaxRadius = 20
	// DefaultRadius applies when lat/long are given without a radius.
	DefaultRadius = 5
	// MaxPageSize is the provider's page-size ceiling.
	MaxPageSize = 100
)

// Sentinel failures the caller degrades on rather than aborting.
var (
	ErrMissingKey = eris.New("attom: API key not configured")
	ErrNoLocation = eris.New("attom: location input required")
)

// Query holds the provider-side search filters.
type Query struct {
	ZipCode      string
	City         string
	State        string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	Latitude     *float64
	Longitude    *float64
	Radius       *float64
	PageSize     int
}

// Client searches the provider's property snapshot endpoint.
type Client interface {
	SearchProperties(ctx context.Context, q Query) ([]Property, error)
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Options configures the client.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RPS bounds request rate against the provider. Zero means 5/s.
	RPS float64
}

// New creates a provider client with a bounded request timeout.
func New(opts Options) Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RPS == 0 {
		opts.RPS = 5
	}
	return &client{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RPS), int(opts.RPS)),
	}
}

// buildParams maps the query onto the provider's parameter names. Empty
// values are omitted.
func buildParams(q Query) url.Values {
	params := url.Values{}

	if q.Latitude != nil && q.Longitude != nil {
		params.Set("latitude", strconv.FormatFloat(*q.Latitude, 'f', -1, 64))
		params.Set("longitude", strconv.FormatFloat(*q.Longitude, 'f', -1, 64))
		radius := float64(DefaultRadius)
		if q.Radius != nil {
			radius = min(*q.Radius, MaxRadius)
		}
		params.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	}
	if q.ZipCode != "" {
		params.Set("postalCode", q.ZipCode)
	}
	if q.City != "" && q.State != "" {
		params.Set("address2", q.City+", "+q.State)
	}
	if q.PropertyType != "" {
		params.Set("propertyType", q.PropertyType)
	}
	if q.MinPrice != nil {
		params.Set("minMktTtlValue", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		params.Set("maxMktTtlValue", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}

	pageSize := q.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	params.Set("page", "1")
	params.Set("pageSize", strconv.Itoa(pageSize))

	return params
}

// SearchProperties queries the snapshot endpoint. A provider-side non-zero
// status yields an empty result; individual records that fail to decode are
// skipped, never fatal.
func (c *client) SearchProperties(ctx context.Context, q Query) ([]Property, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}
	if q.ZipCode == "" && (q.City == "" || q.State == "") && (q.Latitude == nil || q.Longitude == nil) {
		return nil, ErrNoLocation
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "attom: rate limit")
	}

	reqURL := c.baseURL + snapshotPath + "?" + buildParams(q).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "attom: build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("APIKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "attom: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("attom: status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "attom: read body")
	}

	var snap snapshotResponse
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, eris.Wrap(err, "attom: parse response")
	}

	if snap.Status.Code != 0 {
		zap.L().Warn("attom: non-zero provider status",
			zap.Int("code", snap.Status.Code),
			zap.String("msg", snap.Status.Msg),
		)
		return nil, nil
	}

	props := make([]Property, 0, len(snap.Property))
	for _, raw := range snap.Property {
		var p Property
		if err := json.Unmarshal(raw, &p); err != nil {
			zap.L().Warn("attom: skipping malformed property record", zap.Error(err))
			continue
		}
		p.Raw = raw
		props = append(props, p)
	}
	return props, nil
}
