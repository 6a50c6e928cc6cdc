package credential

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusValid   Status = "VALID"
	StatusInvalid Status = "INVALID"
)

func (Status) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(StatusPending),
			string(StatusValid),
			string(StatusInvalid),
		},
		Description: "Status da última validação junto ao fabricante",
		Examples:    []any{StatusValid},
	}
}

func (s Status) String() string {
	return string(s)
}

// StoredField is one credential field at rest: either a plaintext Value, or
// an encrypted {Nonce, Ciphertext} pair. Exactly one representation is set.
type StoredField struct {
	Value      string `json:"value,omitempty"`
	Nonce      string `json:"nonce,omitempty"`
	Ciphertext string `json:"ciphertext,omitempty"`
}

// Encrypted reports whether the field holds an encrypted envelope.
func (f StoredField) Encrypted() bool {
	return f.Nonce != "" || f.Ciphertext != ""
}

// Credential is one user's field set for one manufacturer. The pair
// (UserID, ManufacturerID) is unique.
type Credential struct {
	ID              int
	UserID          int
	ManufacturerID  int
	ReferenceName   string
	Fields          map[string]StoredField
	Status          Status
	LastValidatedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListItem is the client-facing projection of a credential. Field values,
// encrypted or not, are deliberately absent.
type ListItem struct {
	ID               int        `json:"id"`
	ManufacturerID   int        `json:"fabricante_id"`
	ManufacturerName string     `json:"fabricante_nome"`
	ReferenceName    string     `json:"nome_referencia,omitempty"`
	Status           Status     `json:"status_validacao"`
	LastValidatedAt  *time.Time `json:"ultima_validacao_em,omitempty"`
	CreatedAt        time.Time  `json:"criado_em"`
}
