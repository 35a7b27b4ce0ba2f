// internal/cli/create.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm/pkg/engine"
)

var (
	createOS   string
	createArch string
)

var createCmd = &cobra.Command{
	Use:   "create <name> <version> <file>...",
	Short: "Create a package archive",
	Long: `Create a package archive from local files and publish it to the local
repository directory, with a checksum descriptor and an index entry.
Files are stored in the archive under their base names.

Examples:
  bospm create hello 1.0.0 hello.sh
  bospm create tools 2.1.0 build/fmt build/lint --os linux --arch arm64`,
	Args: cobra.MinimumNArgs(3),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createOS, "os", "", "target operating system (default is the current one)")
	createCmd.Flags().StringVar(&createArch, "arch", "", "target architecture (default is the current one)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, version, files := args[0], args[1], args[2:]

	eng := engine.New(config, sysInfo)
	desc, err := eng.Create(name, version, files, createOS, createArch)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created %s\n", desc.Archive)
	fmt.Printf("  sha256: %s\n", desc.SHA256)
	fmt.Printf("  files:  %d\n", len(desc.Files))
	fmt.Printf("  repo:   %s\n", config.RepoDir())
	return nil
}
