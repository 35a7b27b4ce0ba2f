// cmd/bospm/main.go
package main

import (
	"os"

	"github.com/architecture-mechanism/bospm/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
