package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/textc/pkg/cli"
)

// defaultConfigFile is read when present; its absence is not an error.
const defaultConfigFile = "textc.yaml"

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "textc",
	Short: "textc - compile text files with @import directives",
	Long: `textc flattens a tree of text files into a single output file.

Any line consisting solely of @import(PATH) is replaced by the fully expanded
content of PATH. Relative paths resolve against the directory of the file that
contains the directive. Circular imports are skipped and reported; a missing
file aborts the compilation and leaves the output untouched.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			cli.SetColor(false)
		}
	},
}

// Execute runs the root command. Configuration errors exit with status 2,
// every other failure with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.NewPrinter(os.Stdout, os.Stderr).Failure("Error: %v", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (text, json, console)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// commandContext returns the command's context, or Background when the
// command is run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newPrinter(cmd *cobra.Command) *cli.Printer {
	return cli.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
