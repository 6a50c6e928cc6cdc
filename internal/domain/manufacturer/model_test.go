package manufacturer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaField_Sensitive(t *testing.T) {
	tests := []struct {
		name      string
		field     SchemaField
		sensitive bool
	}{
		{"plain text field", SchemaField{Name: "username", Type: FieldTypeText}, false},
		{"password type", SchemaField{Name: "password", Type: FieldTypePassword}, true},
		{"explicit encrypt flag", SchemaField{Name: "api_key", Type: FieldTypeText, Encrypt: true}, true},
		{"password with encrypt flag", SchemaField{Name: "secret", Type: FieldTypePassword, Encrypt: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sensitive, tt.field.Sensitive())
		})
	}
}
