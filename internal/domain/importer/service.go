// Package importer orchestrates the external-plant workflow: decrypt stored
// credentials, talk to the manufacturer's API, and persist user-selected
// plants idempotently.
package importer

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"solarkeeper/internal/domain/credential"
	"solarkeeper/internal/domain/manufacturer"
	"solarkeeper/internal/domain/plant"
	"solarkeeper/internal/vendorapi"
)

// Selection is one external plant the user chose to import.
type Selection struct {
	ManufacturerID int            `json:"fabricante_id"`
	ExternalID     string         `json:"external_id"`
	Name           string         `json:"name"`
	PowerKWP       *float64       `json:"power_kwp,omitempty"`
	Location       string         `json:"location,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// ImportedPlant identifies one affected row after an import.
type ImportedPlant struct {
	ID             int    `json:"id"`
	Name           string `json:"nome"`
	ManufacturerID int    `json:"fabricante_id"`
	ExternalID     string `json:"id_externo_planta"`
}

type Result struct {
	Count  int             `json:"count"`
	Plants []ImportedPlant `json:"plants"`
}

type Servicer interface {
	FetchExternalPlants(ctx context.Context, userID, manufacturerID int) ([]vendorapi.ExternalPlant, error)
	ImportSelected(ctx context.Context, userID int, selections []Selection) (Result, error)
}

type Service struct {
	manufacturers manufacturer.Repository
	credentials   credential.Servicer
	plants        plant.Repository
	adapters      *vendorapi.Registry
	log           *slog.Logger
}

func NewService(
	manufacturers manufacturer.Repository,
	credentials credential.Servicer,
	plants plant.Repository,
	adapters *vendorapi.Registry,
	log *slog.Logger,
) *Service {
	return &Service{
		manufacturers: manufacturers,
		credentials:   credentials,
		plants:        plants,
		adapters:      adapters,
		log:           log.With("component", "importer_service"),
	}
}

// FetchExternalPlants runs the whole chain sequentially: manufacturer lookup,
// credential decryption, vendor login, vendor plant list. The first failing
// stage surfaces verbatim; there are no retries and no partial results.
func (s *Service) FetchExternalPlants(ctx context.Context, userID, manufacturerID int) ([]vendorapi.ExternalPlant, error) {
	man, err := s.manufacturers.Get(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}

	adapter, err := s.adapters.Lookup(man.APIIdentifier)
	if err != nil {
		return nil, err
	}

	creds, err := s.credentials.GetForUse(ctx, userID, manufacturerID)
	if err != nil {
		return nil, err
	}

	token, err := adapter.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	plants, err := adapter.ListPlants(ctx, token)
	if err != nil {
		return nil, err
	}

	s.log.Info("fetched external plants", "user_id", userID, "manufacturer", man.APIIdentifier, "count", len(plants))

	return plants, nil
}

// ImportSelected upserts the chosen plants keyed on (owner, manufacturer,
// external id), so re-importing the same vendor plant updates it in place.
// All selections are validated before the first write; atomicity beyond the
// single row is not guaranteed.
func (s *Service) ImportSelected(ctx context.Context, userID int, selections []Selection) (Result, error) {
	for i, sel := range selections {
		if sel.ManufacturerID == 0 || sel.ExternalID == "" || sel.Name == "" {
			return Result{}, fmt.Errorf("planta %d: fabricante_id, external_id e name são obrigatórios", i+1)
		}
	}

	result := Result{Plants: make([]ImportedPlant, 0, len(selections))}
	for _, sel := range selections {
		p := &plant.Plant{
			UserID:         userID,
			ManufacturerID: sel.ManufacturerID,
			ExternalID:     sel.ExternalID,
			Name:           sel.Name,
			PowerKWP:       sel.PowerKWP,
			Location:       sel.Location,
			Extra:          sel.Extra,
		}

		id, err := s.plants.Upsert(ctx, p)
		if err != nil {
			s.log.Error("failed to upsert plant", "user_id", userID, "external_id", sel.ExternalID, "error", err)
			return result, fmt.Errorf("import plant %q: %w", sel.ExternalID, err)
		}

		result.Count++
		result.Plants = append(result.Plants, ImportedPlant{
			ID:             id,
			Name:           sel.Name,
			ManufacturerID: sel.ManufacturerID,
			ExternalID:     sel.ExternalID,
		})
	}

	s.log.Info("plants imported", "user_id", userID, "count", result.Count)

	return result, nil
}
