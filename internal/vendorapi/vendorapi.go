// Package vendorapi defines the common surface for manufacturer API adapters.
// Each adapter speaks one vendor's HTTP dialect and normalizes its plant
// inventory into ExternalPlant; nothing vendor-specific leaks past it.
package vendorapi

import "context"

// ExternalPlant is a solar installation as reported by a vendor's API,
// before the user decides to import it. It is never persisted as-is.
type ExternalPlant struct {
	ExternalID string         `json:"external_id"`
	Name       string         `json:"name"`
	PowerKWP   *float64       `json:"power_kwp,omitempty"`
	Location   string         `json:"location,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// Adapter authenticates against one vendor and lists its plants.
// Credential field names follow the manufacturer's declared schema.
type Adapter interface {
	Authenticate(ctx context.Context, creds map[string]string) (string, error)
	ListPlants(ctx context.Context, accessToken string) ([]ExternalPlant, error)
}
