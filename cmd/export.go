package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/wealthpath/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a JSON report or CSV tables",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", string(export.FormatJSON), "Format: json, goals-csv, projection-csv, projects-csv, transactions-csv")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file or directory (\"-\" for stdout, default: dated file in the current directory)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, err := export.ParseFormat(flagExportFormat)
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ov, err := s.overview(ctx)
	if err != nil {
		return err
	}

	if flagExportOut == "-" {
		return export.Write(os.Stdout, format, ov, s.now)
	}

	path := flagExportOut
	name := export.FileName(format, s.now)
	if path == "" {
		path = name
	} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, name)
	}

	//nolint:gosec // output path is chosen by the local user
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.Write(f, format, ov, s.now); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	progressf("  Exported %s to %s\n", format, path)
	return nil
}
