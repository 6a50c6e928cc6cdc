// cmd/client/cmd/plant/import.go
package plant

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
	"solarkeeper/internal/domain/importer"
)

var (
	importManufacturerID int
	importIDs            []string
	importAll            bool
)

var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Importar plantas da API do fabricante",
	Long: `Consulta a API do fabricante e importa as plantas escolhidas.

Escolha por ID externo com --id (repetível) ou importe todas com --all.
Reimportar uma planta já existente atualiza os dados dela.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		if !importAll && len(importIDs) == 0 {
			return fmt.Errorf("informe --id pelo menos uma vez ou use --all")
		}

		plants, err := app.FetchExternalPlants(cmd.Context(), importManufacturerID)
		if err != nil {
			return fmt.Errorf("erro ao consultar o fabricante: %w", err)
		}

		wanted := make(map[string]bool, len(importIDs))
		for _, id := range importIDs {
			wanted[id] = true
		}

		var selections []importer.Selection
		for _, p := range plants {
			if !importAll && !wanted[p.ExternalID] {
				continue
			}
			selections = append(selections, importer.Selection{
				ManufacturerID: importManufacturerID,
				ExternalID:     p.ExternalID,
				Name:           p.Name,
				PowerKWP:       p.PowerKWP,
				Location:       p.Location,
				Extra:          p.Extra,
			})
			delete(wanted, p.ExternalID)
		}

		if len(wanted) > 0 {
			for id := range wanted {
				fmt.Printf("Aviso: planta %q não encontrada na conta do fabricante\n", id)
			}
		}
		if len(selections) == 0 {
			return fmt.Errorf("nenhuma planta selecionada para importação")
		}

		result, err := app.ImportPlants(cmd.Context(), selections)
		if err != nil {
			return fmt.Errorf("erro na importação: %w", err)
		}

		color.Green("%d planta(s) importada(s) com sucesso!", result.Count)
		for _, p := range result.Plants {
			fmt.Printf("  %s (ID %d)\n", p.Name, p.ID)
		}

		return nil
	},
}

func init() {
	ImportCmd.Flags().IntVarP(&importManufacturerID, "fabricante", "f", 0, "ID do fabricante")
	ImportCmd.Flags().StringArrayVar(&importIDs, "id", nil, "ID externo da planta a importar (repetível)")
	ImportCmd.Flags().BoolVar(&importAll, "all", false, "importar todas as plantas da conta")
	_ = ImportCmd.MarkFlagRequired("fabricante")
}
