package cli

import (
	"fmt"
	"path/filepath"

	"crackleaf/internal/fileops"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe [files...]",
	Short: "Check qpdf and report PDF encryption",
	Long: `Check that qpdf can run and print its path and version.
With file arguments, also print whether each PDF is encrypted.

Examples:
  crackleaf probe
  crackleaf probe report.pdf scans/*.pdf`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	tool := discoverTool(settings().QPDFPath)
	status := tool.Probe(ctx)

	fmt.Fprintf(out, "qpdf:    %s\n", status.Availability)
	if status.Path != "" {
		fmt.Fprintf(out, "path:    %s\n", status.Path)
	}
	if status.Version != "" {
		fmt.Fprintf(out, "version: %s\n", status.Version)
	}
	if label := status.Label(); label != "" {
		fmt.Fprintf(out, "note:    %s\n", warningStyle.Render(label))
	}
	if err := status.Err(); err != nil {
		return err
	}

	for _, path := range args {
		if !fileops.IsPDF(path) {
			fmt.Fprintf(out, "%s: %s\n", filepath.Base(path), mutedStyle.Render("skipped, not a PDF"))
			continue
		}
		enc := tool.Encryption(ctx, path)
		label := enc.String()
		if enc.Locked() {
			label = failureStyle.Render(label)
		}
		fmt.Fprintf(out, "%s: %s\n", filepath.Base(path), label)
	}
	return nil
}
