// cmd/client/cmd/credential/delete.go
package credential

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remover uma credencial",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("ID inválido: %s", args[0])
		}

		if err := app.DeleteCredential(cmd.Context(), id); err != nil {
			return fmt.Errorf("erro ao remover credencial: %w", err)
		}

		fmt.Printf("Credencial %d removida.\n", id)
		return nil
	},
}
