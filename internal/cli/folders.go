package cli

import (
	"strings"

	"triage-cli/internal/folders"

	"github.com/spf13/cobra"
)

func newFoldersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Folder commands",
	}
	cmd.AddCommand(newFoldersListCmd(app))
	cmd.AddCommand(newFoldersCreateCmd(app))
	cmd.AddCommand(newFoldersRenameCmd(app))
	cmd.AddCommand(newFoldersDeleteCmd(app))
	cmd.AddCommand(newFoldersMoveCmd(app))
	return cmd
}

func newFoldersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders with severity counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, foldersTable(db.State))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"folders":    db.State.Folders,
					"unassigned": db.State.UnassignedIDs,
				},
			})
		},
	}
}

func newFoldersCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, id := folders.Create(db.State, strings.TrimSpace(name))
			db.State = st
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.State.FindFolder(id)})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Folder name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newFoldersRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <folder-id>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if db.State.FindFolder(args[0]) == nil {
				return writeErr(cmd, errNotFound("folder", args[0]))
			}
			db.State = folders.Rename(db.State, args[0], strings.TrimSpace(name))
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.State.FindFolder(args[0])})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New folder name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newFoldersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <folder-id>",
		Short: "Delete a folder (members return to Unassigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if db.State.FindFolder(args[0]) == nil {
				return writeErr(cmd, errNotFound("folder", args[0]))
			}
			db.State = folders.Delete(db.State, args[0])
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
}

func newFoldersMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move <record-id> [record-id...]",
		Short: "Move records into a folder, or back to Unassigned",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, id := range args {
				if _, ok := db.FindRecord(id); !ok {
					return writeErr(cmd, errNotFound("record", id))
				}
			}

			recs := db.RecordIndex()
			if to == "" || strings.EqualFold(to, "unassigned") {
				for _, id := range args {
					db.State = folders.MoveRecordToUnassigned(db.State, recs, id)
				}
			} else {
				if db.State.FindFolder(to) == nil {
					return writeErr(cmd, errNotFound("folder", to))
				}
				db.State = folders.MoveRecordsToFolder(db.State, recs, args, to)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"moved": len(args), "to": to}})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target folder id, or 'unassigned'")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
