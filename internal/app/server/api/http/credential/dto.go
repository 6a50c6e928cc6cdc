package credential

import (
	"time"

	"solarkeeper/internal/domain/credential"
)

type upsertInput struct {
	Body UpsertRequest
}

type UpsertRequest struct {
	ManufacturerID int               `json:"fabricante_id" doc:"ID do fabricante" minimum:"1"`
	Fields         map[string]string `json:"credenciais_campos" doc:"Campos de credencial conforme o schema do fabricante"`
	ReferenceName  string            `json:"nome_referencia,omitempty" doc:"Apelido opcional da credencial" maxLength:"64"`
}

type updateInput struct {
	ID   int `path:"id" doc:"ID da credencial"`
	Body UpdateRequest
}

type UpdateRequest struct {
	Fields        map[string]string `json:"credenciais_campos" doc:"Campos a substituir; campos ausentes são preservados"`
	ReferenceName string            `json:"nome_referencia,omitempty" maxLength:"64"`
}

type upsertOutput struct {
	Body UpsertResponse
}

type UpsertResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    CredentialData `json:"data"`
}

type CredentialData struct {
	ID              int               `json:"id"`
	Status          credential.Status `json:"status_validacao"`
	LastValidatedAt *time.Time        `json:"ultima_validacao_em,omitempty"`
	ReferenceName   string            `json:"nome_referencia,omitempty"`
}

type listOutput struct {
	Body []credential.ListItem
}

type deleteInput struct {
	ID int `path:"id" doc:"ID da credencial"`
}

type deleteOutput struct {
	Body DeleteResponse
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
