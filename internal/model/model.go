package model

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityWarning  Severity = "warning"
	SeverityDisabled Severity = "disabled"
)

// Rank returns the fixed business-priority rank for a severity.
// Higher means more severe. Unknown severities rank below disabled.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityWarning:
		return 2
	case SeverityDisabled:
		return 1
	default:
		return 0
	}
}

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

func (i Impact) Rank() int {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	case ImpactLow:
		return 1
	default:
		return 0
	}
}

type Status string

const (
	StatusOpen         Status = "open"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
	StatusMuted        Status = "muted"
)

type Environment string

const (
	EnvProduction  Environment = "production"
	EnvStaging     Environment = "staging"
	EnvDevelopment Environment = "development"
)

// Record is one monitored item. Content is owned by the record store;
// structural state (folder membership) lives in FolderState, never here.
type Record struct {
	ID          string      `json:"id"`
	Status      Status      `json:"status"`
	Impact      Impact      `json:"impact"`
	Environment Environment `json:"environment"`
	Severity    Severity    `json:"severity"`

	Description string   `json:"description,omitempty"`
	OriginPath  string   `json:"originPath,omitempty"`
	ExternalID  string   `json:"externalId,omitempty"`
	Identities  []string `json:"identities,omitempty"`

	// ReportedAt is the timestamp string as supplied by the external system.
	// It is kept verbatim; the sort engine parses it best-effort.
	ReportedAt string `json:"reportedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SeverityCounts mirrors the count of member records at each severity level.
// Derived, never independently mutated.
type SeverityCounts struct {
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Warning  int `json:"warning"`
	Disabled int `json:"disabled"`
}

func (c SeverityCounts) Total() int {
	return c.Critical + c.Major + c.Warning + c.Disabled
}

func (c *SeverityCounts) Add(s Severity) {
	switch s {
	case SeverityCritical:
		c.Critical++
	case SeverityMajor:
		c.Major++
	case SeverityWarning:
		c.Warning++
	case SeverityDisabled:
		c.Disabled++
	}
}

// Folder is a user-created grouping of records.
type Folder struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	MemberIDs []string       `json:"memberIds"`
	Counts    SeverityCounts `json:"counts"`
}

// FolderState is the aggregate root for folder membership.
//
// Invariant: every record id appears in exactly one place — as a member of
// exactly one folder, or in UnassignedIDs. Never both, never duplicated.
// All mutations go through internal/folders, which returns new snapshots.
type FolderState struct {
	Folders       []Folder        `json:"folders"`
	UnassignedIDs []string        `json:"unassignedIds"`
	Expanded      map[string]bool `json:"-"`
}

// ExpandedIDs returns the expanded set as a list for serialization.
// The runtime representation stays a set.
func (st FolderState) ExpandedIDs() []string {
	out := make([]string, 0, len(st.Expanded))
	for id, on := range st.Expanded {
		if on {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a deep copy. Mutating the copy is never observable through
// the original, which is what makes snapshot-style updates safe.
func (st FolderState) Clone() FolderState {
	out := FolderState{
		Folders:       make([]Folder, len(st.Folders)),
		UnassignedIDs: append([]string(nil), st.UnassignedIDs...),
		Expanded:      make(map[string]bool, len(st.Expanded)),
	}
	for i, f := range st.Folders {
		f.MemberIDs = append([]string(nil), f.MemberIDs...)
		out.Folders[i] = f
	}
	for id, on := range st.Expanded {
		if on {
			out.Expanded[id] = true
		}
	}
	return out
}

// FindFolder returns a pointer into st.Folders, or nil.
func (st *FolderState) FindFolder(id string) *Folder {
	for i := range st.Folders {
		if st.Folders[i].ID == id {
			return &st.Folders[i]
		}
	}
	return nil
}

func ParseSeverity(s string) (Severity, error) {
	v := Severity(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case SeverityCritical, SeverityMajor, SeverityWarning, SeverityDisabled:
		return v, nil
	default:
		return "", fmt.Errorf("invalid severity: %q (expected critical|major|warning|disabled)", s)
	}
}

func ParseImpact(s string) (Impact, error) {
	v := Impact(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return v, nil
	default:
		return "", fmt.Errorf("invalid impact: %q (expected high|medium|low)", s)
	}
}

func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case StatusOpen, StatusAcknowledged, StatusResolved, StatusMuted:
		return v, nil
	default:
		return "", fmt.Errorf("invalid status: %q (expected open|acknowledged|resolved|muted)", s)
	}
}

func ParseEnvironment(s string) (Environment, error) {
	v := Environment(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case EnvProduction, EnvStaging, EnvDevelopment:
		return v, nil
	default:
		return "", fmt.Errorf("invalid environment: %q (expected production|staging|development)", s)
	}
}
