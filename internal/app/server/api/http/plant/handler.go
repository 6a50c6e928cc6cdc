package plant

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/app/server/api/http/middleware/auth"
	"solarkeeper/internal/app/server/crypto"
	"solarkeeper/internal/domain/credential"
	"solarkeeper/internal/domain/importer"
	"solarkeeper/internal/domain/manufacturer"
	"solarkeeper/internal/domain/plant"
	"solarkeeper/internal/vendorapi"
)

type Handler struct {
	importer   importer.Servicer
	plants     plant.Repository
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(imp importer.Servicer, plants plant.Repository, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		importer:   imp,
		plants:     plants,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.fetchOp(), h.fetch)
	huma.Register(api, h.importOp(), h.importSelected)
	huma.Register(api, h.listOp(), h.list)
}

// fetch runs the live vendor listing. Vendor errors pass through with their
// original messages so the client can show the actionable text, notably the
// Growatt API-permission case.
func (h *Handler) fetch(ctx context.Context, input *fetchInput) (*fetchOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	plants, err := h.importer.FetchExternalPlants(ctx, userID, input.Body.ManufacturerID)
	if err != nil {
		return nil, h.mapFetchError(err)
	}

	return &fetchOutput{Body: plants}, nil
}

func (h *Handler) importSelected(ctx context.Context, input *importInput) (*importOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	result, err := h.importer.ImportSelected(ctx, userID, input.Body.Plants)
	if err != nil {
		if result.Count == 0 {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		// Some rows were written before the failure.
		h.log.Error("import stopped mid-batch", "user_id", userID, "imported", result.Count, "error", err)
		return nil, huma.Error500InternalServerError(
			fmt.Sprintf("Importação interrompida após %d planta(s)", result.Count))
	}

	return &importOutput{
		Body: ImportResponse{
			Success: true,
			Message: fmt.Sprintf("%d planta(s) importada(s) com sucesso", result.Count),
			Data:    result.Plants,
		},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	plants, err := h.plants.List(ctx, userID)
	if err != nil {
		h.log.Error("failed to list plants", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("Não foi possível listar plantas")
	}

	return &listOutput{Body: plants}, nil
}

// mapFetchError keeps the failing stage's message intact while picking the
// status that matches it.
func (h *Handler) mapFetchError(err error) error {
	switch {
	case errors.Is(err, vendorapi.ErrVendorAuth):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, vendorapi.ErrVendorList):
		return huma.Error502BadGateway(err.Error())
	case errors.Is(err, vendorapi.ErrUnsupportedManufacturer):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, manufacturer.ErrNotFound):
		return huma.Error404NotFound("Fabricante não encontrado")
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("Nenhuma credencial cadastrada para este fabricante")
	case errors.Is(err, crypto.ErrKeyNotConfigured), errors.Is(err, crypto.ErrDecryption):
		h.log.Error("plant fetch crypto failure", "error", err)
		return huma.Error500InternalServerError("Erro interno ao processar credenciais")
	default:
		h.log.Error("plant fetch failed", "error", err)
		return huma.Error500InternalServerError("Erro interno")
	}
}
