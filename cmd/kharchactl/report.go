package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/client"
	"kharcha/internal/config"
	"kharcha/internal/core"
	"kharcha/internal/export"
	"kharcha/internal/log"
	"kharcha/internal/sheets"
	gsheet "kharcha/internal/sheets/google"
	sheetsmem "kharcha/internal/sheets/memory"
	"kharcha/internal/tui"
	"kharcha/internal/view"
)

func (a *app) summaryCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the total and the per-category breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses, err := a.api().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			st := client.NewState()
			st.Expenses = expenses
			st.Filter = category
			page := view.Build(st)

			fmt.Fprintln(a.out, cli.FormatTitle(view.ChartTitle))
			for _, s := range page.Segments {
				fmt.Fprintf(a.out, "%-14s %s %6s  %s\n", s.Name, cli.Bar(s.Share, 30, s.Color), s.Percent, s.Value.Display())
			}
			_, err = fmt.Fprintln(a.out, cli.BoldStyle.Render("Total Expense: "+page.TotalText))
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", core.AllCategories, "only count this category")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		category string
		output   string
	)
	cmd := &cobra.Command{
		Use:       "export csv|xlsx",
		Short:     "Export expenses as a spreadsheet",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(export.FormatCSV), string(export.FormatXLSX)},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}

			expenses, err := a.api().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			expenses = core.Filter(expenses, category)

			if output == "" {
				output = format.Filename(time.Now())
			}

			var buf bytes.Buffer
			if err := export.Write(&buf, format, expenses); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			if output == "-" {
				_, err := a.out.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			a.logger.Info("Exported expenses", log.FieldOperation, log.OpExport, log.FieldCount, len(expenses), "path", output)
			_, err = fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(expenses), output)))
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", core.AllCategories, "only export this category")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: expenses_YYYYMMDD.<format>)")
	return cmd
}

func (a *app) syncCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror all expenses to Google Sheets once",
		Long: `Mirror all expenses to the configured Google Sheet, replacing its contents.
The sheet is taken from GOOGLE_SPREADSHEET_ID and GOOGLE_SHEET_NAME, with
credentials from GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE.
With --dry-run the rows are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			expenses, err := a.api().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if dryRun {
				m := sheetsmem.New()
				if err := m.ReplaceAll(ctx, expenses); err != nil {
					return err
				}
				for _, row := range m.Rows() {
					fmt.Fprintln(a.out, formatSheetRow(row))
				}
				return nil
			}

			cfg := config.Load()
			var mirror sheets.Mirror
			mirror, err = gsheet.NewClient(ctx, gsheet.Config{
				SpreadsheetID:   cfg.GoogleSpreadsheetID,
				SheetName:       cfg.GoogleSheetName,
				CredentialsJSON: cfg.GoogleServiceAccountJSON,
				CredentialsFile: cfg.GoogleServiceAccountFile,
			}, a.logger)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}
			if err := mirror.ReplaceAll(ctx, expenses); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Mirrored %d expenses", len(expenses))))
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the rows instead of writing the sheet")
	return cmd
}

func formatSheetRow(row []any) string {
	var b bytes.Buffer
	for i, v := range row {
		if i > 0 {
			b.WriteByte('\t')
		}
		fmt.Fprint(&b, v)
	}
	return b.String()
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := client.NewStore(a.api(), a.logger)
			return tui.Run(cmd.Context(), store, tui.Options{Timeout: a.v.GetDuration("timeout")})
		},
	}
}
