// cmd/client/cmd/init.go
package cmd

import (
	"solarkeeper/cmd/client/cmd/auth"
	"solarkeeper/cmd/client/cmd/credential"
	"solarkeeper/cmd/client/cmd/plant"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(credential.CredentialCmd)
	credential.CredentialCmd.AddCommand(credential.SetCmd)
	credential.CredentialCmd.AddCommand(credential.ListCmd)
	credential.CredentialCmd.AddCommand(credential.DeleteCmd)

	rootCmd.AddCommand(plant.PlantCmd)
	plant.PlantCmd.AddCommand(plant.FetchCmd)
	plant.PlantCmd.AddCommand(plant.ImportCmd)
	plant.PlantCmd.AddCommand(plant.ListCmd)
}
