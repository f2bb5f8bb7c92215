package cli

import (
	"os"

	"triage-cli/internal/format"
	"triage-cli/internal/logging"
	"triage-cli/internal/store"
	"triage-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "triage",
		Short:        "Organize monitored records into folders (CLI + TUI)",
		SilenceUsage: true,
		Example: `  # Start the interactive TUI
  triage

  # Scriptable commands
  triage records list
  triage records import --file alerts.json
  triage export --format csv > report.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TRIAGE_DIR", ""), "Path to data dir (default: nearest .triage, else ./.triage)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TRIAGE_FORMAT", "json"), "Output format (json|table; export accepts csv|json)")

	cmd.AddCommand(newRecordsCmd(app))
	cmd.AddCommand(newFoldersCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	cfg, err := store.LoadConfig(s.Dir)
	if err != nil {
		return err
	}
	log := logging.New(s.Dir, cfg.LogLevel)
	return tui.Run(s, db, cfg, log.WithField("component", "tui"))
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err.Error())
	return err
}
