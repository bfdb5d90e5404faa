// Package inventory resolves vehicles from the external inventory service.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/tendant/simple-notify/pkg/httpclient"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// Vehicle is the inventory view of a car as shown in emails.
type Vehicle struct {
	ID       string `json:"id"`
	VIN      string `json:"vin"`
	Year     int    `json:"year"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Trim     string `json:"trim,omitempty"`
	Price    int    `json:"price"`
	Mileage  int    `json:"mileage"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// VehicleInventory looks up a vehicle by id.
type VehicleInventory interface {
	GetVehicle(ctx context.Context, id string) (Vehicle, error)
}

// Client talks to the inventory service over HTTP and keeps recently seen
// vehicles in an in-process cache.
type Client struct {
	baseURL  string
	http     *retryablehttp.Client
	cache    *ristretto.Cache[string, Vehicle]
	cacheTTL time.Duration
}

// ClientOption configures a Client
type ClientOption func(*Client) error

// WithHTTPClient replaces the default retrying client
func WithHTTPClient(c *retryablehttp.Client) ClientOption {
	return func(client *Client) error {
		client.http = c
		return nil
	}
}

// WithCacheTTL sets how long a vehicle stays cached. Zero disables caching.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(client *Client) error {
		client.cacheTTL = ttl
		return nil
	}
}

// NewClient creates an inventory client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("inventory base URL cannot be empty")
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		cacheTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.http == nil {
		c.http = httpclient.New()
	}

	if c.cacheTTL > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, Vehicle]{
			NumCounters:        10000,
			MaxCost:            1000,
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("create vehicle cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// GetVehicle returns the vehicle with id, or ErrVehicleNotFound.
func (c *Client) GetVehicle(ctx context.Context, id string) (Vehicle, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(id); ok {
			return v, nil
		}
	}

	var v Vehicle
	err := httpclient.GetJSON(ctx, c.http, c.baseURL+"/vehicles/"+url.PathEscape(id), &v)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return Vehicle{}, fmt.Errorf("%w: %s", ErrVehicleNotFound, id)
		}
		slog.Error("Failed to fetch vehicle", "id", id, "error", err)
		return Vehicle{}, err
	}

	if c.cache != nil {
		c.cache.SetWithTTL(id, v, 1, c.cacheTTL)
		c.cache.Wait()
	}
	return v, nil
}

// Close releases the cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}
