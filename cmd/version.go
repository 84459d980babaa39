// =============================================================================
// Excel to DTE Converter - Version Command
// =============================================================================
//
// Reports the converter's version and build metadata. Release builds stamp
// the variables below through ldflags:
//
//   go build -ldflags "\
//     -X 'github.com/dtesv/excel-dte-converter/cmd.Version=1.3.0' \
//     -X 'github.com/dtesv/excel-dte-converter/cmd.Commit=$(git rev-parse --short HEAD)' \
//     -X 'github.com/dtesv/excel-dte-converter/cmd.BuildDate=$(date -u +%Y-%m-%d)'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the release version; "dev" for unstamped local builds.
var Version = "dev"

// Commit is the short hash the binary was built from.
var Commit = "none"

// BuildDate is the UTC build date.
var BuildDate = "unknown"

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dteconv %s (%s, built %s, %s)\n", Version, Commit, BuildDate, runtime.Version())
	},
}

// init registers the version command with the root command.
func init() {
	rootCmd.AddCommand(versionCmd)
}
