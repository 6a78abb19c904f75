package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"mercator-hq/textc/pkg/cli"
	"mercator-hq/textc/pkg/compiler"
)

var depsFlags struct {
	input  string
	format string
}

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "List the files an input expands, without writing output",
	Long: `Deps resolves the input exactly as compile does and lists every file that
was expanded, in order, followed by any circular imports that were skipped.

Examples:
  textc deps -i main.txt
  textc deps -i main.txt --format json`,
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)

	depsCmd.Flags().StringVarP(&depsFlags.input, "input-file-path", "i", "", "path to the input file (required)")
	depsCmd.Flags().StringVar(&depsFlags.format, "format", "text", "report format: text, json")

	_ = depsCmd.MarkFlagRequired("input-file-path")
}

// depsReport lists the import tree of an input.
type depsReport struct {
	Root   string           `json:"root"`
	Files  []string         `json:"files"`
	Cycles []compiler.Cycle `json:"cycles,omitempty"`
	Bytes  int              `json:"bytes"`
}

// WriteText implements cli.TextWriter.
func (r depsReport) WriteText(w io.Writer) error {
	for _, f := range r.Files {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}
	for _, c := range r.Cycles {
		if _, err := fmt.Fprintf(w, "cycle skipped at %s:%d: %s\n", c.From, c.Line, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d files, %d cycles, %s\n", len(r.Files), len(r.Cycles), cli.Size(r.Bytes))
	return err
}

func runDeps(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(cli.OutputFormat(depsFlags.format))
	if err != nil {
		return err
	}

	a, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.resolver.Compile(commandContext(cmd), depsFlags.input)
	if err != nil {
		return err
	}

	return formatter.FormatTo(cmd.OutOrStdout(), depsReport{
		Root:   result.Root,
		Files:  result.Files,
		Cycles: result.Cycles,
		Bytes:  len(result.Content),
	})
}
