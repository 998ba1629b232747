package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
)

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc <target>",
	Short: "Show the full documentation for a single symbol",
	Long: `Resolves one target and pretty-prints its complete doc comment as
markdown, including the signature for callables.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		debug, _ := cmd.Flags().GetBool("debug")

		width, _ := cmd.Flags().GetInt("width")
		if !cmd.Flags().Changed("width") {
			width = tui.Width(width)
		}

		if err := cli.RunDoc(cmd.Context(), dir, args[0], width, debug); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.Flags().IntP("width", "W", 88, "Word-wrap width")
}
