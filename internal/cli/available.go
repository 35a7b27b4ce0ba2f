// internal/cli/available.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm/pkg/engine"
	"github.com/architecture-mechanism/bospm/pkg/repo"
)

var availableSource string

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List packages published by the sources",
	Long: `List the package versions the configured sources publish.

Examples:
  bospm available
  bospm available --source github
  bospm available --source website`,
	RunE: runAvailable,
}

func init() {
	availableCmd.Flags().StringVar(&availableSource, "source", repo.SourceAll, "source to query, or \"all\"")
}

func runAvailable(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	eng := engine.New(config, sysInfo)
	descs, err := eng.Available(ctx, availableSource)
	if err != nil {
		return err
	}

	if len(descs) == 0 {
		fmt.Println("No packages available")
		return nil
	}

	for _, d := range descs {
		fmt.Printf("%s %s (%s/%s)\n", d.Name, d.Version, d.OS, d.Arch)
	}
	return nil
}
