package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"triage-cli/internal/model"

	_ "modernc.org/sqlite"
)

const dbFileName = "index.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), dbFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			impact TEXT NOT NULL,
			environment TEXT NOT NULL,
			severity TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			origin_path TEXT NOT NULL DEFAULT '',
			external_id TEXT NOT NULL DEFAULT '',
			identities TEXT NOT NULL DEFAULT '[]',
			reported_at TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			member_ids TEXT NOT NULL DEFAULT '[]',
			critical_count INTEGER NOT NULL DEFAULT 0,
			major_count INTEGER NOT NULL DEFAULT 0,
			warning_count INTEGER NOT NULL DEFAULT 0,
			disabled_count INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s Store) loadSQLite(ctx context.Context) (*DB, error) {
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer sq.Close()

	if err := migrateSQLite(ctx, sq); err != nil {
		return nil, err
	}

	out := &DB{Version: 1, State: model.FolderState{Expanded: map[string]bool{}}}

	rows, err := sq.QueryContext(ctx, `SELECT id, status, impact, environment, severity,
		description, origin_path, external_id, identities, reported_at, created_at, updated_at
		FROM records ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r model.Record
		var identities, createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.Status, &r.Impact, &r.Environment, &r.Severity,
			&r.Description, &r.OriginPath, &r.ExternalID, &identities, &r.ReportedAt,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(identities), &r.Identities); err != nil {
			r.Identities = nil
		}
		r.CreatedAt = parseStoredTime(createdAt)
		r.UpdatedAt = parseStoredTime(updatedAt)
		out.Records = append(out.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	frows, err := sq.QueryContext(ctx, `SELECT id, name, member_ids,
		critical_count, major_count, warning_count, disabled_count
		FROM folders ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	defer frows.Close()
	for frows.Next() {
		var f model.Folder
		var memberIDs string
		if err := frows.Scan(&f.ID, &f.Name, &memberIDs,
			&f.Counts.Critical, &f.Counts.Major, &f.Counts.Warning, &f.Counts.Disabled); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		if err := json.Unmarshal([]byte(memberIDs), &f.MemberIDs); err != nil {
			f.MemberIDs = []string{}
		}
		out.State.Folders = append(out.State.Folders, f)
	}
	if err := frows.Err(); err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}

	if v, ok, err := readMeta(ctx, sq, "unassigned_ids"); err != nil {
		return nil, err
	} else if ok {
		_ = json.Unmarshal([]byte(v), &out.State.UnassignedIDs)
	}
	if v, ok, err := readMeta(ctx, sq, "expanded_ids"); err != nil {
		return nil, err
	} else if ok {
		var ids []string
		_ = json.Unmarshal([]byte(v), &ids)
		for _, id := range ids {
			out.State.Expanded[id] = true
		}
	}
	return out, nil
}

func (s Store) saveSQLite(ctx context.Context, db *DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer sq.Close()

	if err := migrateSQLite(ctx, sq); err != nil {
		return err
	}

	tx, err := sq.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Replace-all strategy: simple and safe at this scale.
	for _, t := range []string{"records", "folders"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}

	for _, r := range db.Records {
		identities, _ := json.Marshal(r.Identities)
		if _, err := tx.ExecContext(ctx, `INSERT INTO records
			(id, status, impact, environment, severity, description, origin_path,
			 external_id, identities, reported_at, created_at, updated_at)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			r.ID, string(r.Status), string(r.Impact), string(r.Environment), string(r.Severity),
			r.Description, r.OriginPath, r.ExternalID, string(identities), r.ReportedAt,
			r.CreatedAt.UTC().Format(time.RFC3339Nano), r.UpdatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}

	for i, f := range db.State.Folders {
		memberIDs, _ := json.Marshal(f.MemberIDs)
		if _, err := tx.ExecContext(ctx, `INSERT INTO folders
			(id, name, member_ids, critical_count, major_count, warning_count, disabled_count, position)
			VALUES (?,?,?,?,?,?,?,?)`,
			f.ID, f.Name, string(memberIDs),
			f.Counts.Critical, f.Counts.Major, f.Counts.Warning, f.Counts.Disabled, i,
		); err != nil {
			return fmt.Errorf("insert folder %s: %w", f.ID, err)
		}
	}

	unassigned, _ := json.Marshal(db.State.UnassignedIDs)
	expanded, _ := json.Marshal(db.State.ExpandedIDs())
	meta := map[string]string{
		"version":        fmt.Sprintf("%d", db.Version),
		"unassigned_ids": string(unassigned),
		"expanded_ids":   string(expanded),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return fmt.Errorf("write meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func readMeta(ctx context.Context, sq *sql.DB, key string) (string, bool, error) {
	var v string
	err := sq.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read meta %s: %w", key, err)
	}
	return v, true, nil
}

func writeMeta(ctx context.Context, sq *sql.DB, key, value string) error {
	if _, err := sq.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, value); err != nil {
		return fmt.Errorf("write meta %s: %w", key, err)
	}
	return nil
}

func parseStoredTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
