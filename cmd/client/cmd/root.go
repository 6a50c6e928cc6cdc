// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
	"solarkeeper/internal/app/client/config"
	"solarkeeper/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "solarkeeper",
	Short: "Solarkeeper - cliente para importação de plantas solares",
	Long: `Solarkeeper é o cliente de terminal para gerenciar credenciais de
fabricantes de inversores solares e importar plantas das APIs dos fabricantes.

As credenciais são guardadas cifradas no servidor e usadas apenas para
consultar as plantas na API do fabricante.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.New(cfg.Env)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("erro ao inicializar o cliente: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))

	return nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "endereço do servidor Solarkeeper")
}
