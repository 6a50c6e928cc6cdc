package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name        string
		login       string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{
			name:     "valid credentials",
			login:    "user123",
			password: "senha123",
			wantErr:  false,
		},
		{
			name:        "login too short",
			login:       "ab",
			password:    "senha123",
			wantErr:     true,
			expectedErr: "login must be between",
		},
		{
			name:        "login too long",
			login:       strings.Repeat("a", 33),
			password:    "senha123",
			wantErr:     true,
			expectedErr: "login must be between",
		},
		{
			name:        "login with space",
			login:       "user name",
			password:    "senha123",
			wantErr:     true,
			expectedErr: "whitespace",
		},
		{
			name:        "password too short",
			login:       "user123",
			password:    "abc",
			wantErr:     true,
			expectedErr: "password must be at least",
		},
		{
			name:        "password over bcrypt limit",
			login:       "user123",
			password:    strings.Repeat("x", 73),
			wantErr:     true,
			expectedErr: "password must be at most",
		},
		{
			name:     "password at bcrypt limit",
			login:    "user123",
			password: strings.Repeat("x", 72),
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRegister(tt.login, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
