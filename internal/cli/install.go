// internal/cli/install.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm/pkg/engine"
)

var (
	installOS   string
	installArch string
)

var installCmd = &cobra.Command{
	Use:   "install <name> <version>",
	Short: "Install a package",
	Long: `Install a package from the configured sources.

The archive is downloaded into a staging area, checksum-verified, and
only then moved into the install tree. Installing a package that is
already installed fails; use update to change versions.

Examples:
  bospm install hello 1.0.0
  bospm install hello 1.0 --os linux --arch arm64`,
	Args: cobra.ExactArgs(2),
	RunE: elevated(runInstall),
}

func init() {
	installCmd.Flags().StringVar(&installOS, "os", "", "target operating system (default is the current one)")
	installCmd.Flags().StringVar(&installArch, "arch", "", "target architecture (default is the current one)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	eng := engine.New(config, sysInfo)
	rec, err := eng.Install(ctx, args[0], args[1], installOS, installArch)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Installed %s %s (%s/%s)\n", rec.Name, rec.Version, rec.OS, rec.Arch)
	return nil
}
