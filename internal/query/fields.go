package query

import (
	"strings"

	"triage-cli/internal/model"
)

// Field identifies a sortable/filterable record column.
type Field string

const (
	FieldSeverity    Field = "severity"
	FieldImpact      Field = "impact"
	FieldStatus      Field = "status"
	FieldEnvironment Field = "environment"
	FieldDescription Field = "description"
	FieldOrigin      Field = "origin"
	FieldExternalID  Field = "externalId"
	FieldIdentities  Field = "identities"
	FieldReportedAt  Field = "reportedAt"
)

// Fields lists the known columns in display order.
var Fields = []Field{
	FieldSeverity,
	FieldImpact,
	FieldStatus,
	FieldEnvironment,
	FieldDescription,
	FieldOrigin,
	FieldExternalID,
	FieldIdentities,
	FieldReportedAt,
}

func KnownField(f Field) bool {
	for _, k := range Fields {
		if k == f {
			return true
		}
	}
	return false
}

// Value returns the column's string representation for a record.
// Unknown fields map to "".
func Value(r model.Record, f Field) string {
	switch f {
	case FieldSeverity:
		return string(r.Severity)
	case FieldImpact:
		return string(r.Impact)
	case FieldStatus:
		return string(r.Status)
	case FieldEnvironment:
		return string(r.Environment)
	case FieldDescription:
		return r.Description
	case FieldOrigin:
		return r.OriginPath
	case FieldExternalID:
		return r.ExternalID
	case FieldIdentities:
		return strings.Join(r.Identities, " ")
	case FieldReportedAt:
		return r.ReportedAt
	default:
		return ""
	}
}

// enumField reports whether the column is a closed enumeration. Column
// filters match enum columns exactly and free-text columns by substring.
func enumField(f Field) bool {
	switch f {
	case FieldSeverity, FieldImpact, FieldStatus, FieldEnvironment:
		return true
	default:
		return false
	}
}
