// cmd/client/cmd/credential/list.go
package credential

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listar credenciais salvas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		items, err := app.ListCredentials(cmd.Context())
		if err != nil {
			return fmt.Errorf("erro ao listar credenciais: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("Nenhuma credencial cadastrada.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tFabricante\tNome\tStatus\tÚltima validação\t\n")
		fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")

		for _, item := range items {
			lastValidated := "-"
			if item.LastValidatedAt != nil {
				lastValidated = item.LastValidatedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
				item.ID,
				item.ManufacturerName,
				item.ReferenceName,
				statusText(item.Status),
				lastValidated,
			)
		}

		return w.Flush()
	},
}
