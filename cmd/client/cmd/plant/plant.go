package plant

import (
	"github.com/spf13/cobra"
)

// PlantCmd is the parent command for plant listing and import operations.
var PlantCmd = &cobra.Command{
	Use:   "planta",
	Short: "Gerenciar plantas solares",
	Long:  `Consultar plantas na API do fabricante, importá-las e listar as importadas.`,
}
