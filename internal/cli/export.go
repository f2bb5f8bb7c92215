package cli

import (
	"os"

	"triage-cli/internal/export"
	"triage-cli/internal/query"
	"triage-cli/internal/rows"
	"triage-cli/internal/selection"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		flags listFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records in display order as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			spec := query.ParseSpecString(flags.sort)
			seq := rows.Materialize(db.State, db.RecordIndex(), spec, flags.filters())
			recs := export.Collect(seq, selection.New(), export.ScopeAll)

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				w = f
			}

			switch app.Format {
			case "csv":
				err = export.WriteCSV(w, recs)
			case "", "json":
				err = export.WriteJSON(w, recs)
			default:
				err = errBadFlag("format", app.Format, "csv|json")
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.severity, "severity", "", "Filter by severity")
	cmd.Flags().StringVar(&flags.impact, "impact", "", "Filter by impact")
	cmd.Flags().StringVar(&flags.status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&flags.environment, "environment", "", "Filter by environment")
	cmd.Flags().StringVar(&flags.search, "search", "", "Substring match across all fields")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "Sort keys, e.g. severity,-description")
	cmd.Flags().StringVar(&out, "out", "", "Write to file instead of stdout")
	return cmd
}
