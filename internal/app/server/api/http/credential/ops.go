package credential

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-create",
		Method:      http.MethodPost,
		Path:        "/api/credenciais",
		Summary:     "Salvar credenciais de um fabricante",
		Tags:        []string{"credenciais"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-update",
		Method:      http.MethodPut,
		Path:        "/api/credenciais/{id}",
		Summary:     "Atualizar credenciais existentes",
		Tags:        []string{"credenciais"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-list",
		Method:      http.MethodGet,
		Path:        "/api/credenciais",
		Summary:     "Listar credenciais do usuário",
		Tags:        []string{"credenciais"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-delete",
		Method:      http.MethodDelete,
		Path:        "/api/credenciais/{id}",
		Summary:     "Remover uma credencial",
		Tags:        []string{"credenciais"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
