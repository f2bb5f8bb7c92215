package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: triage %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
	}
	return env
}

func TestCLISmoke(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".triage")

	a := mustRun(t, "--dir", dir, "records", "add",
		"--severity", "critical", "--impact", "high", "--environment", "production",
		"--description", "disk pressure on node", "--identity", "node-1", "--identity", "node-2")
	aID, _ := a["data"].(map[string]any)["id"].(string)
	if aID == "" {
		t.Fatalf("expected records add to return record id; got: %#v", a["data"])
	}
	b := mustRun(t, "--dir", dir, "records", "add",
		"--severity", "warning", "--impact", "low", "--description", "cert expiring soon")
	bID, _ := b["data"].(map[string]any)["id"].(string)
	if bID == "" {
		t.Fatalf("expected records add to return record id; got: %#v", b["data"])
	}

	list := mustRun(t, "--dir", dir, "records", "list")
	if recs, _ := list["data"].([]any); len(recs) != 2 {
		t.Fatalf("expected 2 records, got: %#v", list["data"])
	}
	filtered := mustRun(t, "--dir", dir, "records", "list", "--severity", "critical")
	if recs, _ := filtered["data"].([]any); len(recs) != 1 {
		t.Fatalf("expected 1 critical record, got: %#v", filtered["data"])
	}

	fld := mustRun(t, "--dir", dir, "folders", "create", "--name", "Infra")
	fldID, _ := fld["data"].(map[string]any)["id"].(string)
	if fldID == "" {
		t.Fatalf("expected folders create to return id; got: %#v", fld["data"])
	}

	mustRun(t, "--dir", dir, "folders", "move", aID, "--to", fldID)

	folders := mustRun(t, "--dir", dir, "folders", "list")
	data, _ := folders["data"].(map[string]any)
	flds, _ := data["folders"].([]any)
	if len(flds) != 1 {
		t.Fatalf("expected 1 folder, got: %#v", data)
	}
	f0, _ := flds[0].(map[string]any)
	counts, _ := f0["counts"].(map[string]any)
	if got, _ := counts["critical"].(float64); got != 1 {
		t.Fatalf("expected critical counter 1 after move, got: %#v", f0)
	}
	unassigned, _ := data["unassigned"].([]any)
	if len(unassigned) != 1 || unassigned[0] != bID {
		t.Fatalf("expected only %s unassigned, got: %#v", bID, unassigned)
	}

	mustRun(t, "--dir", dir, "folders", "rename", fldID, "--name", "Infrastructure")
	mustRun(t, "--dir", dir, "folders", "delete", fldID)
	after := mustRun(t, "--dir", dir, "folders", "list")
	data, _ = after["data"].(map[string]any)
	if flds, _ := data["folders"].([]any); len(flds) != 0 {
		t.Fatalf("expected no folders after delete, got: %#v", data)
	}
	if unassigned, _ := data["unassigned"].([]any); len(unassigned) != 2 {
		t.Fatalf("expected both records unassigned after delete, got: %#v", data)
	}
}

func TestCLIListFiltersAndSorts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".triage")

	mustRun(t, "--dir", dir, "records", "add", "--severity", "warning", "--description", "cert expiring")
	mustRun(t, "--dir", dir, "records", "add", "--severity", "critical", "--description", "db down")
	mustRun(t, "--dir", dir, "records", "add", "--severity", "major", "--environment", "staging", "--description", "latency spike")

	sorted := mustRun(t, "--dir", dir, "records", "list", "--sort", "severity")
	recs, _ := sorted["data"].([]any)
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got: %#v", sorted["data"])
	}
	first, _ := recs[0].(map[string]any)
	if first["severity"] != "critical" {
		t.Fatalf("severity sort should put critical first, got: %#v", first)
	}

	narrowed := mustRun(t, "--dir", dir, "records", "list",
		"--environment", "production", "--search", "db")
	if recs, _ := narrowed["data"].([]any); len(recs) != 1 {
		t.Fatalf("expected 1 match for environment+search, got: %#v", narrowed["data"])
	}
}

func TestCLIExportRejectsTableFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".triage")
	mustRun(t, "--dir", dir, "records", "add", "--severity", "warning", "--description", "cert expiring")

	_, stderr, err := runCLI(t, []string{"--dir", dir, "--format", "table", "export"})
	if err == nil {
		t.Fatal("expected export to reject --format table")
	}
	if !strings.Contains(string(stderr), "csv|json") {
		t.Fatalf("error should name the accepted formats, got: %s", stderr)
	}
}

func TestCLIImportAndExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".triage")

	feed := `[
  {"severity":"major","impact":"medium","status":"open","environment":"staging","description":"latency spike","originPath":"stage/eu/api","externalId":"EXT-9","identities":["svc-api"],"reportedAt":"2026-08-20T08:00:00Z"},
  {"severity":"critical","impact":"high","status":"open","environment":"production","description":"db down","originPath":"prod/us/db"}
]`
	feedPath := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(feedPath, []byte(feed), 0o644); err != nil {
		t.Fatal(err)
	}

	imp := mustRun(t, "--dir", dir, "records", "import", "--file", feedPath)
	data, _ := imp["data"].(map[string]any)
	if n, _ := data["imported"].(float64); n != 2 {
		t.Fatalf("expected 2 imported, got: %#v", imp["data"])
	}

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "--format", "csv", "export"})
	if err != nil {
		t.Fatalf("export failed: %v\nstderr: %s", err, stderr)
	}
	out := string(stdout)
	if !strings.HasPrefix(out, "id,") {
		t.Fatalf("expected CSV header, got:\n%s", out)
	}
	if !strings.Contains(out, "latency spike") || !strings.Contains(out, "db down") {
		t.Fatalf("expected both records in CSV:\n%s", out)
	}

	stdout, _, err = runCLI(t, []string{"--dir", dir, "export", "--severity", "critical"})
	if err != nil {
		t.Fatalf("export json failed: %v", err)
	}
	var recs []map[string]any
	if err := json.Unmarshal(stdout, &recs); err != nil {
		t.Fatalf("export json unmarshal: %v\n%s", err, stdout)
	}
	if len(recs) != 1 || recs[0]["description"] != "db down" {
		t.Fatalf("expected only the critical record, got: %#v", recs)
	}
}

func TestCLIImportRejectsUnknownSeverity(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".triage")
	feedPath := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(feedPath, []byte(`[{"severity":"apocalyptic","impact":"low","status":"open","environment":"production","description":"x"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "records", "import", "--file", feedPath}); err == nil {
		t.Fatal("expected import to fail on unknown severity")
	}
}

func TestCLIMoveUnknownFolderFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".triage")
	a := mustRun(t, "--dir", dir, "records", "add", "--description", "x")
	aID, _ := a["data"].(map[string]any)["id"].(string)
	if _, _, err := runCLI(t, []string{"--dir", dir, "folders", "move", aID, "--to", "fld-nope"}); err == nil {
		t.Fatal("expected move to unknown folder to fail")
	}
}
