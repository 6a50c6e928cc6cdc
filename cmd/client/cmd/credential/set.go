// cmd/client/cmd/credential/set.go
package credential

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"solarkeeper/cmd/client/cmd/types"
	"solarkeeper/internal/app/client"
	"solarkeeper/internal/domain/manufacturer"
)

var (
	setManufacturerID int
	setReferenceName  string
	setCredentialID   int
)

var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Salvar ou atualizar credenciais de um fabricante",
	Long: `Pergunta os campos definidos pelo fabricante e envia ao servidor.

Campos sensíveis (senhas) são digitados sem eco e guardados cifrados no
servidor. Com --id, atualiza uma credencial existente; campos deixados em
branco são preservados.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		manufacturers, err := app.Manufacturers(cmd.Context())
		if err != nil {
			return fmt.Errorf("erro ao listar fabricantes: %w", err)
		}

		var man *manufacturer.Manufacturer
		for i := range manufacturers {
			if manufacturers[i].ID == setManufacturerID {
				man = &manufacturers[i]
				break
			}
		}
		if man == nil {
			return fmt.Errorf("fabricante %d não encontrado; use 'solarkeeper credencial list' para ver os fabricantes", setManufacturerID)
		}

		fmt.Printf("=== Credenciais %s ===\n\n", man.Name)

		updating := setCredentialID > 0
		fields, err := promptFields(man.Schema, updating)
		if err != nil {
			return err
		}

		var data *client.CredentialData
		if updating {
			data, err = app.UpdateCredential(cmd.Context(), setCredentialID, fields, setReferenceName)
		} else {
			data, err = app.SaveCredential(cmd.Context(), setManufacturerID, fields, setReferenceName)
		}
		if err != nil {
			return fmt.Errorf("erro ao salvar credenciais: %w", err)
		}

		fmt.Println()
		color.Green("Credenciais salvas!")
		fmt.Printf("ID: %d | Status: %s\n", data.ID, statusText(data.Status))
		if data.Status == "PENDING" {
			fmt.Println("A validação junto ao fabricante ainda não foi concluída.")
		}

		return nil
	},
}

// promptFields asks for each schema field in order. During an update an empty
// answer skips the field so the stored value stays.
func promptFields(schema []manufacturer.SchemaField, updating bool) (map[string]string, error) {
	reader := bufio.NewReader(os.Stdin)
	fields := make(map[string]string, len(schema))

	for _, field := range schema {
		label := field.Label
		if label == "" {
			label = field.Name
		}
		if updating {
			fmt.Printf("%s (vazio mantém o atual): ", label)
		} else {
			fmt.Printf("%s: ", label)
		}

		var value string
		if field.Type == manufacturer.FieldTypePassword {
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return nil, fmt.Errorf("erro ao ler %s: %w", label, err)
			}
			fmt.Println()
			value = string(raw)
		} else {
			line, err := reader.ReadString('\n')
			if err != nil {
				return nil, fmt.Errorf("erro ao ler %s: %w", label, err)
			}
			value = strings.TrimSpace(line)
		}

		if value == "" && updating {
			continue
		}
		fields[field.Name] = value
	}

	return fields, nil
}

func init() {
	SetCmd.Flags().IntVarP(&setManufacturerID, "fabricante", "f", 0, "ID do fabricante")
	SetCmd.Flags().StringVarP(&setReferenceName, "nome", "n", "", "apelido da credencial")
	SetCmd.Flags().IntVar(&setCredentialID, "id", 0, "ID da credencial a atualizar")
	_ = SetCmd.MarkFlagRequired("fabricante")
}
