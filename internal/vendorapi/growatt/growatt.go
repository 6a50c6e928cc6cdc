// Package growatt implements the vendorapi.Adapter for the Growatt OpenAPI.
package growatt

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"solarkeeper/internal/vendorapi"
)

const DefaultBaseURL = "https://openapi.growatt.com"

// errCodePermissionDenied is Growatt's code for an account that exists but
// has no API/OSS access enabled.
const errCodePermissionDenied = 10011

type Client struct {
	http    *http.Client
	baseURL string
	log     *slog.Logger
}

func New(log *slog.Logger) *Client {
	return NewWithHTTPClient(&http.Client{Timeout: 30 * time.Second}, DefaultBaseURL, log)
}

// NewWithHTTPClient allows injecting an httptest server in tests and
// overriding the base URL from configuration. A nil client and an empty
// base URL fall back to the defaults.
func NewWithHTTPClient(httpClient *http.Client, baseURL string, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With("component", "growatt_adapter"),
	}
}

type loginResponse struct {
	ErrorCode   int    `json:"error_code"`
	ErrorMsg    string `json:"error_msg"`
	AccessToken string `json:"access_token"`
}

// Authenticate logs into Growatt with the stored credential fields.
// The password is sent as an MD5 hex digest because the vendor API demands
// it; this is not a security measure of this system.
func (c *Client) Authenticate(ctx context.Context, creds map[string]string) (string, error) {
	username := creds["username"]
	password := creds["password"]
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: growatt requires username and password fields", vendorapi.ErrVendorAuth)
	}

	sum := md5.Sum([]byte(password))
	payload, err := json.Marshal(map[string]string{
		"account":  username,
		"password": hex.EncodeToString(sum[:]),
	})
	if err != nil {
		return "", fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/user/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("growatt login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: growatt login returned status %d", vendorapi.ErrVendorAuth, resp.StatusCode)
	}

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: malformed login response: %v", vendorapi.ErrVendorAuth, err)
	}

	if body.ErrorCode == errCodePermissionDenied {
		return "", fmt.Errorf("%w: growatt denied API access for this account (code 10011); enable OSS/API permission for the account in the Growatt portal", vendorapi.ErrVendorAuth)
	}
	if body.ErrorCode != 0 {
		c.log.Debug("growatt login rejected", "error_code", body.ErrorCode, "error_msg", body.ErrorMsg)
		return "", fmt.Errorf("%w: growatt login failed (code %d): %s", vendorapi.ErrVendorAuth, body.ErrorCode, body.ErrorMsg)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: growatt login response carried no access token", vendorapi.ErrVendorAuth)
	}

	return body.AccessToken, nil
}

// ListPlants fetches the plant inventory for the authenticated account and
// normalizes it into the vendor-neutral shape.
func (c *Client) ListPlants(ctx context.Context, accessToken string) ([]vendorapi.ExternalPlant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/plant/list", nil)
	if err != nil {
		return nil, fmt.Errorf("build plant list request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("growatt plant list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: growatt plant list returned status %d", vendorapi.ErrVendorList, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: malformed plant list response: %v", vendorapi.ErrVendorList, err)
	}

	entries, err := normalizePlantList(raw)
	if err != nil {
		return nil, err
	}

	plants := make([]vendorapi.ExternalPlant, 0, len(entries))
	for _, entry := range entries {
		plants = append(plants, mapPlant(entry))
	}

	return plants, nil
}

// normalizePlantList accepts the two shapes Growatt is known to answer with:
// a flat array, or an object nesting the array under "plants".
func normalizePlantList(raw json.RawMessage) ([]map[string]any, error) {
	var flat []map[string]any
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var wrapped struct {
		Plants json.RawMessage `json:"plants"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Plants) > 0 {
		var nested []map[string]any
		if err := json.Unmarshal(wrapped.Plants, &nested); err == nil {
			return nested, nil
		}
	}

	return nil, fmt.Errorf("%w: response is not a plant array", vendorapi.ErrVendorList)
}

func mapPlant(entry map[string]any) vendorapi.ExternalPlant {
	plant := vendorapi.ExternalPlant{
		ExternalID: asString(entry["plant_id"]),
		Name:       asString(entry["plant_name"]),
	}

	// nominal_power arrives in watts, as a string or a number depending on
	// the endpoint version.
	if watts, ok := asFloat(entry["nominal_power"]); ok {
		kwp := watts / 1000
		plant.PowerKWP = &kwp
	}

	var parts []string
	if city := asString(entry["city"]); city != "" {
		parts = append(parts, city)
	}
	if country := asString(entry["country"]); country != "" {
		parts = append(parts, country)
	}
	plant.Location = strings.Join(parts, ", ")

	extra := make(map[string]any)
	for key, value := range entry {
		switch key {
		case "plant_id", "plant_name", "nominal_power", "city", "country":
			continue
		}
		extra[key] = value
	}
	if len(extra) > 0 {
		plant.Extra = extra
	}

	return plant
}

func asString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	default:
		return ""
	}
}

func asFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
