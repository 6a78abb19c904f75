/*
Package cli provides command-line helpers shared by the textc commands.

Output Formatting:

Command reports are rendered as human-readable text or JSON:

	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

A report renders itself in text mode by implementing TextWriter.

Status Lines:

Printer writes colored one-line status messages (green for success, red for
failure, yellow for warnings). Color is dropped automatically when output is
not a terminal, or globally with SetColor(false).

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
