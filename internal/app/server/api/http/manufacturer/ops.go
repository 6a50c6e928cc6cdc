package manufacturer

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "manufacturers-list",
		Method:      http.MethodGet,
		Path:        "/api/fabricantes",
		Summary:     "Listar fabricantes e seus campos de credencial",
		Tags:        []string{"fabricantes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
