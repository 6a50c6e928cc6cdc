package manufacturer

const (
	FieldTypeText     = "text"
	FieldTypePassword = "password"
)

// SchemaField describes one credential field a manufacturer expects.
// The same declaration drives the client's input form and the store's
// selective encryption, so neither side hardcodes vendor knowledge.
type SchemaField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Encrypt  bool   `json:"encrypt"`
}

// Sensitive reports whether the field value must be encrypted before storage.
func (f SchemaField) Sensitive() bool {
	return f.Encrypt || f.Type == FieldTypePassword
}

type Manufacturer struct {
	ID            int           `json:"id"`
	Name          string        `json:"nome"`
	APIIdentifier string        `json:"identificador_api"`
	Supported     bool          `json:"suportado"`
	Schema        []SchemaField `json:"campos_credenciais"`
}
