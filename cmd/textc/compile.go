package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/textc/pkg/cli"
	"mercator-hq/textc/pkg/compiler"
)

var compileFlags struct {
	input       string
	output      string
	format      string
	metricsFile string
	check       bool
}

// errOutOfDate is returned by compile --check when the output differs.
var errOutOfDate = errors.New("output is out of date")

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a file by expanding its @import directives",
	Long: `Compile resolves every @import directive in the input, recursively, and
writes the flattened result to the output file.

The output is replaced atomically: if any imported file is missing, the
error is reported and the output file is left untouched.

Examples:
  # Compile main.txt into out.txt
  textc compile -i main.txt -o out.txt

  # Machine-readable report
  textc compile -i main.txt -o out.txt --format json

  # Fail if out.txt is stale, without touching it
  textc compile -i main.txt -o out.txt --check

  # Leave a Prometheus textfile for node_exporter
  textc compile -i main.txt -o out.txt --metrics-file /var/lib/node_exporter/textc.prom`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileFlags.input, "input-file-path", "i", "", "path to the input file (required)")
	compileCmd.Flags().StringVarP(&compileFlags.output, "output-file-path", "o", "", "path for the output file (required)")
	compileCmd.Flags().StringVar(&compileFlags.format, "format", "text", "report format: text, json")
	compileCmd.Flags().BoolVar(&compileFlags.check, "check", false, "compare with the existing output instead of writing it")
	compileCmd.Flags().StringVar(&compileFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	_ = compileCmd.MarkFlagRequired("input-file-path")
	_ = compileCmd.MarkFlagRequired("output-file-path")
}

// compileReport is the result of a successful compile command.
type compileReport struct {
	ID         string           `json:"id"`
	Input      string           `json:"input"`
	Output     string           `json:"output"`
	Files      []string         `json:"files"`
	Cycles     []compiler.Cycle `json:"cycles,omitempty"`
	Bytes      int              `json:"bytes"`
	DurationMS int64            `json:"duration_ms"`
}

func newCompileReport(result *compiler.Result, output string) compileReport {
	return compileReport{
		ID:         result.ID,
		Input:      result.Root,
		Output:     output,
		Files:      result.Files,
		Cycles:     result.Cycles,
		Bytes:      len(result.Content),
		DurationMS: result.Duration.Milliseconds(),
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(cli.OutputFormat(compileFlags.format))
	if err != nil {
		return err
	}

	a, err := newApp(cmd, appOptions{forceMetrics: compileFlags.metricsFile != ""})
	if err != nil {
		return err
	}
	defer a.Close()

	if compileFlags.check {
		return runCheck(cmd, a)
	}

	result, err := a.compileTo(commandContext(cmd), compileFlags.input, compileFlags.output)
	a.writeMetrics(compileFlags.metricsFile)
	if err != nil {
		return err
	}

	a.logger.Info("compilation succeeded",
		"compile_id", result.ID,
		"input", result.Root,
		"output", compileFlags.output,
		"files", len(result.Files),
		"cycles", len(result.Cycles),
	)

	report := newCompileReport(result, compileFlags.output)
	if cli.OutputFormat(compileFlags.format) == cli.FormatJSON {
		return formatter.FormatTo(cmd.OutOrStdout(), report)
	}

	p := newPrinter(cmd)
	p.Success("Compiled file saved to %s", compileFlags.output)
	if verbose {
		printCompileDetails(cmd.OutOrStdout(), report)
	}
	return nil
}

func printCompileDetails(w io.Writer, r compileReport) {
	p := cli.NewPrinter(w, w)
	p.Plain("  files:    %d", len(r.Files))
	p.Plain("  cycles:   %d", len(r.Cycles))
	p.Plain("  size:     %s", cli.Size(r.Bytes))
	p.Plain("  duration: %s", time.Duration(r.DurationMS)*time.Millisecond)
}

func runCheck(cmd *cobra.Command, a *app) error {
	result, diff, err := a.checkAgainst(commandContext(cmd), compileFlags.input, compileFlags.output)
	a.writeMetrics(compileFlags.metricsFile)
	if err != nil {
		return err
	}

	a.logger.Info("check finished",
		"compile_id", result.ID,
		"input", result.Root,
		"output", compileFlags.output,
		"changed_lines", len(diff),
	)

	p := newPrinter(cmd)
	if len(diff) == 0 {
		p.Success("%s is up to date", compileFlags.output)
		return nil
	}
	p.Diff(diff)
	return fmt.Errorf("%w: %s (%d changed lines)", errOutOfDate, compileFlags.output, len(diff))
}
