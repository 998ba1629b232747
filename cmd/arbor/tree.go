package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
)

// treeCmd represents the tree command, also wired as the root default.
var treeCmd = &cobra.Command{
	Use:   "tree [targets...]",
	Short: "Render the member tree for the given targets",
	Long: `Renders one documentation tree per target to stdout.

Without targets it surveys every top-level package of the module in the
working directory, one line per package.`,
	Args: cobra.ArbitraryArgs,
	Run:  runTree,
}

func runTree(cmd *cobra.Command, args []string) {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := cli.LoadFileConfig(dir, domain.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags win over the project config file.
	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.Level, _ = flags.GetInt("level")
	}
	if flags.Changed("subpackages") {
		cfg.Subpackages, _ = flags.GetBool("subpackages")
	}
	if flags.Changed("modules") {
		cfg.Modules, _ = flags.GetBool("modules")
	}
	if flags.Changed("private") {
		cfg.Private, _ = flags.GetBool("private")
	}
	if flags.Changed("dunders") {
		cfg.Dunders, _ = flags.GetBool("dunders")
	}
	if flags.Changed("tests") {
		cfg.Tests, _ = flags.GetBool("tests")
	}
	if flags.Changed("signature") {
		cfg.Signature, _ = flags.GetInt("signature")
	}
	if flags.Changed("docstring") {
		cfg.Docstring, _ = flags.GetInt("docstring")
	}
	if flags.Changed("info") {
		cfg.Info, _ = flags.GetInt("info")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	} else if cfg.Width == domain.Default().Width {
		cfg.Width = tui.Width(cfg.Width)
	}

	printer, _ := flags.GetString("printer")
	noColor, _ := flags.GetBool("no-color")

	err = cli.RunTree(cmd.Context(), cli.TreeOptions{
		Dir:     dir,
		Targets: args,
		Config:  cfg,
		Printer: printer,
		Debug:   debug,
		NoColor: noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("level", "l", 999, "Maximum nesting depth to descend")
	cmd.Flags().BoolP("subpackages", "s", false, "Descend into subpackages")
	cmd.Flags().BoolP("modules", "m", false, "List individual source files under packages")
	cmd.Flags().Bool("private", false, "Show unexported and underscore-prefixed members")
	cmd.Flags().BoolP("dunders", "d", false, "Show __name__-style generated artifacts")
	cmd.Flags().BoolP("tests", "t", false, "Show test scaffolding")
	cmd.Flags().StringP("printer", "P", arbor.PrinterTree, "Output format: 'tree' or 'dense'")
	cmd.Flags().IntP("signature", "S", 1, "Signature verbosity (0-4)")
	cmd.Flags().IntP("docstring", "D", 2, "Doc comment verbosity (0-2)")
	cmd.Flags().IntP("info", "I", 2, "Per-node info verbosity (0-4)")
	cmd.Flags().IntP("width", "W", 88, "Output width (50-500, auto-detected when omitted)")
	cmd.Flags().Bool("no-color", false, "Disable terminal colors")
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addTreeFlags(treeCmd)

	// Make 'tree' the default when no subcommand is given.
	addTreeFlags(rootCmd)
	rootCmd.Run = runTree
}
