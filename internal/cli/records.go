package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"triage-cli/internal/model"
	"triage-cli/internal/query"

	"github.com/spf13/cobra"
)

func newRecordsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Record commands",
	}
	cmd.AddCommand(newRecordsListCmd(app))
	cmd.AddCommand(newRecordsShowCmd(app))
	cmd.AddCommand(newRecordsAddCmd(app))
	cmd.AddCommand(newRecordsImportCmd(app))
	return cmd
}

func newRecordsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			r, ok := db.FindRecord(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("record", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}
}

type listFlags struct {
	severity    string
	impact      string
	status      string
	environment string
	search      string
	sort        string
}

func (f listFlags) filters() query.Filters {
	cols := map[query.Field]string{}
	set := func(field query.Field, v string) {
		if strings.TrimSpace(v) != "" {
			cols[field] = v
		}
	}
	set(query.FieldSeverity, f.severity)
	set(query.FieldImpact, f.impact)
	set(query.FieldStatus, f.status)
	set(query.FieldEnvironment, f.environment)
	return query.Filters{Columns: cols, Search: f.search}
}

func newRecordsListCmd(app *App) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, optionally filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs := query.Apply(db.Records, flags.filters())
			if spec := query.ParseSpecString(flags.sort); len(spec) > 0 {
				recs = query.Sort(recs, spec)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, recordsTable(recs))
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}

	cmd.Flags().StringVar(&flags.severity, "severity", "", "Filter by severity (critical|major|warning|disabled)")
	cmd.Flags().StringVar(&flags.impact, "impact", "", "Filter by impact (high|medium|low)")
	cmd.Flags().StringVar(&flags.status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&flags.environment, "environment", "", "Filter by environment")
	cmd.Flags().StringVar(&flags.search, "search", "", "Substring match across all fields")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "Sort keys, e.g. severity,-description")
	return cmd
}

func newRecordsAddCmd(app *App) *cobra.Command {
	var (
		severity    string
		impact      string
		status      string
		environment string
		description string
		origin      string
		externalID  string
		identities  []string
		reportedAt  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record (lands in Unassigned)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			r := model.Record{
				Description: strings.TrimSpace(description),
				OriginPath:  strings.TrimSpace(origin),
				ExternalID:  strings.TrimSpace(externalID),
				Identities:  identities,
				ReportedAt:  strings.TrimSpace(reportedAt),
			}
			if r.Severity, err = model.ParseSeverity(severity); err != nil {
				return writeErr(cmd, errBadFlag("severity", severity, "critical|major|warning|disabled"))
			}
			if r.Impact, err = model.ParseImpact(impact); err != nil {
				return writeErr(cmd, errBadFlag("impact", impact, "high|medium|low"))
			}
			if r.Status, err = model.ParseStatus(status); err != nil {
				return writeErr(cmd, errBadFlag("status", status, "open|acknowledged|resolved|muted"))
			}
			if r.Environment, err = model.ParseEnvironment(environment); err != nil {
				return writeErr(cmd, errBadFlag("environment", environment, "production|staging|development"))
			}

			r = db.AddRecord(r)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "warning", "Severity")
	cmd.Flags().StringVar(&impact, "impact", "low", "Impact")
	cmd.Flags().StringVar(&status, "status", "open", "Status")
	cmd.Flags().StringVar(&environment, "environment", "production", "Environment")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin path, e.g. prod/us-east/web")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External system id")
	cmd.Flags().StringSliceVar(&identities, "identity", nil, "Affected identity (repeatable)")
	cmd.Flags().StringVar(&reportedAt, "reported-at", "", "Reported-at timestamp, stored verbatim")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

// importRecord is the wire shape accepted by `records import`. Severity
// and friends are plain strings so a feed with unknown values fails with
// a useful message instead of silently coercing.
type importRecord struct {
	Severity    string   `json:"severity"`
	Impact      string   `json:"impact"`
	Status      string   `json:"status"`
	Environment string   `json:"environment"`
	Description string   `json:"description"`
	OriginPath  string   `json:"originPath"`
	ExternalID  string   `json:"externalId"`
	Identities  []string `json:"identities"`
	ReportedAt  string   `json:"reportedAt"`
}

func newRecordsImportCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import records from a JSON array (all land in Unassigned)",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return writeErr(cmd, err)
			}
			var in []importRecord
			if err := json.Unmarshal(raw, &in); err != nil {
				return writeErr(cmd, fmt.Errorf("parse %s: %w", file, err))
			}

			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			added := make([]model.Record, 0, len(in))
			for i, ir := range in {
				r := model.Record{
					Description: ir.Description,
					OriginPath:  ir.OriginPath,
					ExternalID:  ir.ExternalID,
					Identities:  ir.Identities,
					ReportedAt:  ir.ReportedAt,
				}
				if r.Severity, err = model.ParseSeverity(ir.Severity); err != nil {
					return writeErr(cmd, fmt.Errorf("record %d: %w", i, err))
				}
				if r.Impact, err = model.ParseImpact(ir.Impact); err != nil {
					return writeErr(cmd, fmt.Errorf("record %d: %w", i, err))
				}
				if r.Status, err = model.ParseStatus(ir.Status); err != nil {
					return writeErr(cmd, fmt.Errorf("record %d: %w", i, err))
				}
				if r.Environment, err = model.ParseEnvironment(ir.Environment); err != nil {
					return writeErr(cmd, fmt.Errorf("record %d: %w", i, err))
				}
				added = append(added, db.AddRecord(r))
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"imported": len(added)}})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON array of records")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
