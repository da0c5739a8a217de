package main

import (
	"fmt"
	"os"

	"kennel-console/internal/cli"
)

// @title           Kennel Console API
// @version         1.0
// @description     API de administración de la guardería: kennels, reservas, alimentación, clientes y dashboard.
// @BasePath        /
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
