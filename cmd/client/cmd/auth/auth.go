package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd is the parent command for user account operations.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Gerenciar conta de usuário",
	Long:  `Registro, login e logout no servidor Solarkeeper.`,
}
