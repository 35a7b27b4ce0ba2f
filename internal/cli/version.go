// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bospm version %s\n", bospm.Version)
		fmt.Println("Bellande OS Package Manager")
		fmt.Printf("Platform: %s\n", sysInfo)
	},
}
