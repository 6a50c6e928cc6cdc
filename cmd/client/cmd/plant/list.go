// cmd/client/cmd/plant/list.go
package plant

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
	Short: "Listar plantas importadas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		plants, err := app.ListPlants(cmd.Context())
		if err != nil {
			return fmt.Errorf("erro ao listar plantas: %w", err)
		}

		if len(plants) == 0 {
			fmt.Println("Nenhuma planta importada.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNome\tID externo\tPotência (kWp)\tLocal\tImportada em\t\n")
		fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t\n")

		for _, p := range plants {
			power := "-"
			if p.PowerKWP != nil {
				power = fmt.Sprintf("%.2f", *p.PowerKWP)
			}
			location := p.Location
			if location == "" {
				location = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
				p.ID, p.Name, p.ExternalID, power, location,
				p.CreatedAt.Format("2006-01-02"),
			)
		}

		return w.Flush()
	},
}
