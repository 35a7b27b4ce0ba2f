// internal/cli/uninstall.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm/pkg/engine"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Uninstall a package",
	Long: `Remove an installed package's files and its manifest record.

Removal is best-effort per file: if some files cannot be removed the
record is kept and the failures are listed, so a later retry can
finish the job.`,
	Args: cobra.ExactArgs(1),
	RunE: elevated(runUninstall),
}

func runUninstall(cmd *cobra.Command, args []string) error {
	eng := engine.New(config, sysInfo)
	rec, err := eng.Uninstall(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("✓ Uninstalled %s %s\n", rec.Name, rec.Version)
	return nil
}
