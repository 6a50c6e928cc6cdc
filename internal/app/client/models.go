package client

import (
	"time"

	"solarkeeper/internal/domain/credential"
)

// CredentialSaveRequest is the payload for POST /api/credenciais.
type CredentialSaveRequest struct {
	ManufacturerID int               `json:"fabricante_id"`
	Fields         map[string]string `json:"credenciais_campos"`
	ReferenceName  string            `json:"nome_referencia,omitempty"`
}

// CredentialUpdateRequest is the payload for PUT /api/credenciais/{id}.
type CredentialUpdateRequest struct {
	Fields        map[string]string `json:"credenciais_campos"`
	ReferenceName string            `json:"nome_referencia,omitempty"`
}

// CredentialData is the data portion of a credential upsert response.
type CredentialData struct {
	ID              int               `json:"id"`
	Status          credential.Status `json:"status_validacao"`
	LastValidatedAt *time.Time        `json:"ultima_validacao_em,omitempty"`
	ReferenceName   string            `json:"nome_referencia,omitempty"`
}

type credentialUpsertResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    CredentialData `json:"data"`
}
