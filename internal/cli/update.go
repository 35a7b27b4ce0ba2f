// internal/cli/update.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm/pkg/engine"
)

var (
	updateOS   string
	updateArch string
)

var updateCmd = &cobra.Command{
	Use:   "update <name> [<version>]",
	Short: "Update a package",
	Long: `Update an installed package to the given version, or to the latest
the sources publish when no version is named. An explicit version must
be newer than the installed one.

The replacement is staged and checksum-verified before the installed
files are touched, so a failed update leaves the current version in
place. When nothing newer is available the command is a no-op.

Examples:
  bospm update hello
  bospm update hello 2.0.0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: elevated(runUpdate),
}

func init() {
	updateCmd.Flags().StringVar(&updateOS, "os", "", "target operating system (default is the installed one)")
	updateCmd.Flags().StringVar(&updateArch, "arch", "", "target architecture (default is the installed one)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	version := ""
	if len(args) == 2 {
		version = args[1]
	}

	eng := engine.New(config, sysInfo)
	rec, updated, err := eng.Update(ctx, args[0], version, updateOS, updateArch)
	if err != nil {
		// The swap can succeed while cleanup of the old version fails;
		// report what was committed before the error.
		if rec != nil && updated {
			fmt.Printf("✓ Updated %s to %s\n", rec.Name, rec.Version)
		}
		return err
	}

	if !updated {
		fmt.Printf("%s %s is already up to date\n", rec.Name, rec.Version)
		return nil
	}

	fmt.Printf("✓ Updated %s to %s\n", rec.Name, rec.Version)
	return nil
}
