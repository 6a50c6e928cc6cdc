// cmd/client/cmd/auth/login.go
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Entrar no servidor Solarkeeper",
	Long: `Autentica no servidor Solarkeeper.

O token de sessão é salvo localmente para os próximos comandos.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		fmt.Println("=== Login ===")
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

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Login(ctx, login, string(password)); err != nil {
			return fmt.Errorf("erro na autenticação: %w", err)
		}

		fmt.Println()
		color.Green("Login realizado com sucesso!")

		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Encerrar a sessão local",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		if err := app.Logout(); err != nil {
			return err
		}

		fmt.Println("Sessão encerrada.")
		return nil
	},
}
