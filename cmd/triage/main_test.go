package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectRecordLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"triage"},
			want: []string{"triage"},
		},
		{
			name: "direct record id first token",
			in:   []string{"triage", "rec-abc123"},
			want: []string{"triage", "records", "show", "rec-abc123"},
		},
		{
			name: "direct record id after value flag",
			in:   []string{"triage", "--dir", "./tmp-test-ws", "rec-abc123"},
			want: []string{"triage", "--dir", "./tmp-test-ws", "records", "show", "rec-abc123"},
		},
		{
			name: "direct record id after equals flag",
			in:   []string{"triage", "--dir=./tmp-test-ws", "rec-abc123"},
			want: []string{"triage", "--dir=./tmp-test-ws", "records", "show", "rec-abc123"},
		},
		{
			name: "direct record id after bool flag",
			in:   []string{"triage", "--pretty", "rec-abc123"},
			want: []string{"triage", "--pretty", "records", "show", "rec-abc123"},
		},
		{
			name: "direct record id after double dash",
			in:   []string{"triage", "--dir", "./tmp-test-ws", "--", "rec-abc123"},
			want: []string{"triage", "--dir", "./tmp-test-ws", "--", "records", "show", "rec-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"triage", "records", "show", "rec-abc123"},
			want: []string{"triage", "records", "show", "rec-abc123"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"triage", "wat"},
			want: []string{"triage", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectRecordLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
