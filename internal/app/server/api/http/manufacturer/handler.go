package manufacturer

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/domain/manufacturer"
)

type Handler struct {
	repo       manufacturer.Repository
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(repo manufacturer.Repository, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		repo:       repo,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
}

// list returns the manufacturer catalog including the credential field
// schemas the client form is rendered from.
func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	manufacturers, err := h.repo.List(ctx)
	if err != nil {
		h.log.Error("failed to list manufacturers", "error", err)
		return nil, huma.Error500InternalServerError("Não foi possível listar fabricantes")
	}

	return &listOutput{Body: manufacturers}, nil
}
