package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor [targets...]",
	Short: "Arbor renders documentation trees for Go packages",
	Long: `Arbor introspects Go packages and renders their members as a tree,
one branch per package, file, type, function or method.

Targets are import paths or dotted symbol paths ('net/http',
'io.Reader.Read'); '*' surveys every top-level package of the module.`,
	Args: cobra.ArbitraryArgs,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory to resolve packages from")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}
