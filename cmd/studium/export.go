package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aknishi/studium/internal/export"
	"github.com/aknishi/studium/internal/study"
)

func newExportCommand() *cobra.Command {
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Export study artifacts for use outside the assistant",
	}

	exportCommand.AddCommand(newExportPlanCommand())
	exportCommand.AddCommand(newExportPDFCommand())

	return exportCommand
}

func newExportPlanCommand() *cobra.Command {
	var (
		startDate string
		output    string
	)

	command := &cobra.Command{
		Use:   "plan <plan file>",
		Short: "Export a study plan as a CSV file with calendar dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planPath := args[0]
			entries, err := study.LoadPlan(planPath)
			if err != nil {
				return fmt.Errorf("study.LoadPlan(%s) > %w", planPath, err)
			}

			start := time.Now()
			if startDate != "" {
				start, err = time.Parse(time.DateOnly, startDate)
				if err != nil {
					return fmt.Errorf("invalid --start date %q, expected YYYY-MM-DD", startDate)
				}
			}

			if output == "" {
				output = strings.TrimSuffix(planPath, filepath.Ext(planPath)) + ".csv"
			}
			if err := export.WritePlanCSV(output, entries, start); err != nil {
				return fmt.Errorf("export.WritePlanCSV(%s) > %w", output, err)
			}
			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&startDate, "start", "", "start date of the plan (YYYY-MM-DD, defaults to today)")
	flags.StringVar(&output, "output", "", "path of the CSV file to write")
	return command
}

func newExportPDFCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pdf <markdown file>",
		Short: "Convert generated markdown content to a PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdownPath := args[0]
			markdown, err := os.ReadFile(markdownPath)
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
			}

			pdfPath, err := export.WriteContentPDF(markdownPath, string(markdown))
			if err != nil {
				return fmt.Errorf("export.WriteContentPDF() > %w", err)
			}
			fmt.Printf("Wrote %s\n", pdfPath)
			return nil
		},
	}
}
