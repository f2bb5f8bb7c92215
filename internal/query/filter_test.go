package query

import (
	"testing"

	"triage-cli/internal/model"
)

func TestFilterColumnsAreConjunctive(t *testing.T) {
	recs := []model.Record{
		{ID: "r1", Severity: model.SeverityCritical, Environment: model.EnvProduction, Description: "db down"},
		{ID: "r2", Severity: model.SeverityCritical, Environment: model.EnvStaging, Description: "db slow"},
		{ID: "r3", Severity: model.SeverityWarning, Environment: model.EnvProduction, Description: "disk"},
	}
	got := Apply(recs, Filters{Columns: map[Field]string{
		FieldSeverity:    "critical",
		FieldEnvironment: "production",
	}})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected only r1, got %v", ids(got))
	}
}

func TestFilterEnumColumnsMatchExactly(t *testing.T) {
	recs := []model.Record{
		{ID: "r1", Status: model.StatusOpen},
		{ID: "r2", Status: model.StatusResolved},
	}
	// "open" must not substring-match "reopened"-style values; enum columns
	// compare whole values, case-insensitively.
	got := Apply(recs, Filters{Columns: map[Field]string{FieldStatus: "OPEN"}})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected only r1, got %v", ids(got))
	}
}

func TestFilterTextColumnsMatchBySubstring(t *testing.T) {
	recs := []model.Record{
		{ID: "r1", OriginPath: "infra/db/primary"},
		{ID: "r2", OriginPath: "apps/web"},
	}
	got := Apply(recs, Filters{Columns: map[Field]string{FieldOrigin: "db"}})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected only r1, got %v", ids(got))
	}
}

func TestGlobalSearchMatchesAnyVisibleField(t *testing.T) {
	recs := []model.Record{
		{ID: "r1", Description: "latency spike", Identities: []string{"node-7"}},
		{ID: "r2", Description: "cert expiry", ExternalID: "EXT-99"},
		{ID: "r3", Description: "ok"},
	}
	got := Apply(recs, Filters{Search: "NODE"})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected only r1 for identity search, got %v", ids(got))
	}
	got = Apply(recs, Filters{Search: "ext-99"})
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("expected only r2 for external id search, got %v", ids(got))
	}
}

func TestSearchAndColumnsCombine(t *testing.T) {
	recs := []model.Record{
		{ID: "r1", Severity: model.SeverityCritical, Description: "db down"},
		{ID: "r2", Severity: model.SeverityWarning, Description: "db slow"},
	}
	got := Apply(recs, Filters{
		Columns: map[Field]string{FieldSeverity: "critical"},
		Search:  "db",
	})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected only r1, got %v", ids(got))
	}
}

func TestEmptyFiltersCopyInput(t *testing.T) {
	recs := []model.Record{{ID: "r1"}, {ID: "r2"}}
	got := Apply(recs, Filters{})
	if len(got) != 2 {
		t.Fatalf("expected passthrough, got %v", ids(got))
	}
	got[0].ID = "mutated"
	if recs[0].ID != "r1" {
		t.Fatalf("Apply must return a copy, input was mutated")
	}
}
