// internal/cli/root.go
package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/architecture-mechanism/bospm"
	"github.com/architecture-mechanism/bospm/pkg/core"
	"github.com/architecture-mechanism/bospm/pkg/platform"
)

var (
	cfgFile string
	rootDir string
	debug   bool

	config  *core.Config
	sysInfo platform.Info

	// childCode is the exit code of an elevated re-execution; the
	// parent process reports it as its own.
	childCode int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bospm",
	Short: "Bellande OS Package Manager",
	Long: `bospm - Bellande OS Package Manager

A privilege-aware package manager for Bellande OS and the platforms it
runs beside. Packages are resolved from git and website sources,
checksum-verified, and installed under a per-user state root.`,
	Version:       bospm.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps the outcome to a process exit
// code: 0 on success, 1 on any operation failure, 3 when privilege
// elevation was needed but could not be carried out. A re-executed
// child reports through its own exit code, which the parent passes on.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, core.ErrElevation) {
			return 3
		}
		return 1
	}
	return childCode
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $BOSPM_HOME/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "state root directory (default is $HOME/.bospm)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(availableCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if rootDir != "" {
		config.Root = rootDir
	}
	if debug {
		config.Debug = true
	}

	sysInfo = platform.Detect()
}

// elevated wraps the handler of a command that mutates system state.
// When the process lacks the needed privileges the invocation is
// re-executed through the platform's elevation front end; the child
// does the work and the wrapper only records its exit code.
func elevated(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		outcome := platform.Ensure(sysInfo, cmd.Name(), os.Args[1:])
		switch outcome.Kind {
		case platform.Fail:
			return fmt.Errorf("%w: %s", core.ErrElevation, outcome.Reason)
		case platform.Reexec:
			fmt.Printf("%s needs elevated privileges, re-executing via %s...\n", cmd.Name(), outcome.Cmd.Path)
			if err := outcome.Cmd.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					childCode = exitErr.ExitCode()
					return nil
				}
				return fmt.Errorf("%w: re-executing: %v", core.ErrElevation, err)
			}
			return nil
		}
		return run(cmd, args)
	}
}
