// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Registrar novo usuário",
	Long: `Registra um novo usuário no servidor Solarkeeper.

Depois do registro, entre com: solarkeeper auth login`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		fmt.Println("=== Registro de novo usuário ===")
		fmt.Println()

		fmt.Print("Login: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Senha: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("erro ao ler a senha: %w", err)
		}
		fmt.Println()

		fmt.Print("Repita a senha: ")
		passwordConfirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("erro ao ler a senha: %w", err)
		}
		fmt.Println()

		if string(password) != string(passwordConfirm) {
			return fmt.Errorf("as senhas não coincidem")
		}

		if err := app.Register(cmd.Context(), login, string(password)); err != nil {
			return fmt.Errorf("erro no registro: %w", err)
		}

		fmt.Println()
		color.Green("Registro concluído com sucesso!")
		fmt.Println("Agora entre com: solarkeeper auth login")

		return nil
	},
}
