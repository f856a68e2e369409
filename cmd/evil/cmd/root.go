// Package cmd implements the evil command-line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "evil",
	Short: "evil interpreter",
	Long: `evil is a tree-walking interpreter for the evil scripting language:
dynamically-typed, class-based, with closures, single inheritance, and
prototype-style monkey-patching.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
