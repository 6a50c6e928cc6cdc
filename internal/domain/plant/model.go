package plant

import "time"

// Plant is the durable domain record for an imported installation.
// (UserID, ManufacturerID, ExternalID) is unique so re-imports update
// metadata instead of duplicating rows.
type Plant struct {
	ID             int            `json:"id"`
	UserID         int            `json:"-"`
	ManufacturerID int            `json:"fabricante_id"`
	ExternalID     string         `json:"id_externo_planta"`
	Name           string         `json:"nome"`
	PowerKWP       *float64       `json:"potencia_kwp,omitempty"`
	Location       string         `json:"localizacao,omitempty"`
	Extra          map[string]any `json:"dados_extras,omitempty"`
	CreatedAt      time.Time      `json:"criado_em"`
	UpdatedAt      time.Time      `json:"atualizado_em"`
}
