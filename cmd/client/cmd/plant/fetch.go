// cmd/client/cmd/plant/fetch.go
package plant

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
)

var fetchManufacturerID int

var FetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Listar plantas disponíveis na API do fabricante",
	Long: `Consulta a API do fabricante com as credenciais salvas e mostra as
plantas da conta. Nada é importado; use 'solarkeeper planta import' depois.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		plants, err := app.FetchExternalPlants(cmd.Context(), fetchManufacturerID)
		if err != nil {
			return fmt.Errorf("erro ao consultar o fabricante: %w", err)
		}

		if len(plants) == 0 {
			fmt.Println("Nenhuma planta encontrada nesta conta.")
			return nil
		}

		fmt.Printf("Encontradas %d planta(s):\n\n", len(plants))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID externo\tNome\tPotência (kWp)\tLocal\t\n")
		fmt.Fprintf(w, "---\t---\t---\t---\t\n")

		for _, p := range plants {
			power := "-"
			if p.PowerKWP != nil {
				power = fmt.Sprintf("%.2f", *p.PowerKWP)
			}
			location := p.Location
			if location == "" {
				location = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", p.ExternalID, p.Name, power, location)
		}

		return w.Flush()
	},
}

func init() {
	FetchCmd.Flags().IntVarP(&fetchManufacturerID, "fabricante", "f", 0, "ID do fabricante")
	_ = FetchCmd.MarkFlagRequired("fabricante")
}
