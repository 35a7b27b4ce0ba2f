// internal/cli/list.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm/pkg/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Long:  `List every package recorded in the manifest, sorted by name.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	eng := engine.New(config, sysInfo)
	records, err := eng.List()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No packages installed")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s %s (%s/%s) installed %s\n",
			rec.Name, rec.Version, rec.OS, rec.Arch,
			rec.InstalledAt.Format("2006-01-02"))
	}
	fmt.Printf("\nTotal: %d package(s)\n", len(records))
	return nil
}
