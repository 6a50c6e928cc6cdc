package plant

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) fetchOp() huma.Operation {
	return huma.Operation{
		OperationID: "plants-fetch-external",
		Method:      http.MethodPost,
		Path:        "/api/plantas/externas",
		Summary:     "Listar plantas disponíveis na API do fabricante",
		Tags:        []string{"plantas"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) importOp() huma.Operation {
	return huma.Operation{
		OperationID: "plants-import",
		Method:      http.MethodPost,
		Path:        "/api/plantas/importar",
		Summary:     "Importar plantas selecionadas",
		Tags:        []string{"plantas"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "plants-list",
		Method:      http.MethodGet,
		Path:        "/api/plantas",
		Summary:     "Listar plantas importadas do usuário",
		Tags:        []string{"plantas"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
