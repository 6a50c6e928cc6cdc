package credential

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/app/server/api/http/middleware/auth"
	"solarkeeper/internal/app/server/crypto"
	"solarkeeper/internal/domain/credential"
	"solarkeeper/internal/domain/manufacturer"
)

type Handler struct {
	service    credential.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service credential.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) create(ctx context.Context, input *upsertInput) (*upsertOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	cred, err := h.service.Create(ctx, userID, input.Body.ManufacturerID, input.Body.ReferenceName, input.Body.Fields)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &upsertOutput{
		Body: UpsertResponse{
			Success: true,
			Message: "Credenciais salvas com sucesso",
			Data: CredentialData{
				ID:              cred.ID,
				Status:          cred.Status,
				LastValidatedAt: cred.LastValidatedAt,
				ReferenceName:   cred.ReferenceName,
			},
		},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*upsertOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	cred, err := h.service.Update(ctx, userID, input.ID, input.Body.ReferenceName, input.Body.Fields)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &upsertOutput{
		Body: UpsertResponse{
			Success: true,
			Message: "Credenciais atualizadas com sucesso",
			Data: CredentialData{
				ID:              cred.ID,
				Status:          cred.Status,
				LastValidatedAt: cred.LastValidatedAt,
				ReferenceName:   cred.ReferenceName,
			},
		},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &listOutput{Body: items}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.mapError(err)
	}

	return &deleteOutput{
		Body: DeleteResponse{
			Success: true,
			Message: "Credencial removida com sucesso",
		},
	}, nil
}

// mapError translates domain errors into HTTP problems. Crypto failures are
// reported as a generic 500: key material and ciphertext details never reach
// the client.
func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, credential.ErrValidation):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("Credencial não encontrada")
	case errors.Is(err, manufacturer.ErrNotFound):
		return huma.Error404NotFound("Fabricante não encontrado")
	case errors.Is(err, credential.ErrConflict):
		return huma.Error409Conflict("Já existe uma credencial para este fabricante")
	case errors.Is(err, crypto.ErrKeyNotConfigured), errors.Is(err, crypto.ErrDecryption):
		h.log.Error("credential crypto failure", "error", err)
		return huma.Error500InternalServerError("Erro interno ao processar credenciais")
	default:
		h.log.Error("credential operation failed", "error", err)
		return huma.Error500InternalServerError("Erro interno")
	}
}
