package credential

import (
	"github.com/fatih/color"

	"github.com/spf13/cobra"

	domain "solarkeeper/internal/domain/credential"
)

// CredentialCmd is the parent command for manufacturer credential operations.
var CredentialCmd = &cobra.Command{
	Use:   "credencial",
	Short: "Gerenciar credenciais de fabricantes",
	Long:  `Salvar, listar e remover credenciais das APIs dos fabricantes.`,
}

// statusText renders the validation status with the usual colors.
func statusText(status domain.Status) string {
	switch status {
	case domain.StatusValid:
		return color.GreenString(string(status))
	case domain.StatusInvalid:
		return color.RedString(string(status))
	default:
		return color.YellowString(string(status))
	}
}
