package main

import "solarkeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
