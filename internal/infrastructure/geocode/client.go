// Package geocode resolves coordinates to human-readable places through a
// Nominatim-style reverse endpoint. Lookups carry an explicit deadline and
// surface ErrTimeout instead of hanging; results are cached in Redis since
// job coordinates never change.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"gigboard/internal/domain/geo"
	"gigboard/internal/infrastructure/cache"
)

var (
	ErrTimeout     = errors.New("geocoding timeout")
	ErrUnavailable = errors.New("geocoder unavailable")
)

// Result is the subset of reverse-geocoding fields the app uses.
type Result struct {
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	Region string `json:"region"`
}

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	cache   *cache.Redis
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, c *cache.Redis, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		http:    &http.Client{},
		cache:   c,
		logger:  logger,
	}
}

// Enabled reports whether a reverse-geocoding endpoint is configured.
// Without one, callers fall back to raw coordinates.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Reverse resolves a coordinate. The lookup is bounded by the configured
// timeout; a missed deadline returns ErrTimeout.
func (c *Client) Reverse(ctx context.Context, coord geo.Coordinate) (Result, error) {
	if !c.Enabled() {
		return Result{}, ErrUnavailable
	}

	key := cacheKey(coord)
	var cached Result
	if hit, err := c.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", coord.Lat))
	q.Set("lon", fmt.Sprintf("%f", coord.Lng))
	q.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, ErrTimeout
		}
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var payload struct {
		Name    string `json:"name"`
		Address struct {
			Road    string `json:"road"`
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, err
	}

	city := payload.Address.City
	if city == "" {
		city = payload.Address.Town
	}
	if city == "" {
		city = payload.Address.Village
	}

	res := Result{
		Name:   payload.Name,
		Street: payload.Address.Road,
		City:   city,
		Region: payload.Address.State,
	}

	if err := c.cache.SetJSON(ctx, key, res, 24*time.Hour); err != nil && c.logger != nil {
		c.logger.Printf("[Geocode] cache write failed: %v", err)
	}
	return res, nil
}

func cacheKey(coord geo.Coordinate) string {
	// Four decimal places is ~11 m, plenty for address display.
	return fmt.Sprintf("geo:%.4f:%.4f", coord.Lat, coord.Lng)
}

var numericName = regexp.MustCompile(`^\d+$`)

// FormatAddress renders a display address from a geocoding result,
// preferring place name, then street, then city or region. The coordinate
// is the fallback when nothing resolved.
func FormatAddress(res Result, coord geo.Coordinate) string {
	locality := res.City
	if locality == "" {
		locality = res.Region
	}

	if res.Name != "" && !numericName.MatchString(res.Name) {
		return strings.TrimSpace(strings.TrimSuffix(res.Name+", "+locality, ", "))
	}
	if res.Street != "" {
		return strings.TrimSpace(strings.TrimSuffix(res.Street+", "+locality, ", "))
	}
	if locality != "" {
		return locality
	}
	return fmt.Sprintf("%.4f, %.4f", coord.Lat, coord.Lng)
}
