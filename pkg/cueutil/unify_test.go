// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Settings: {
	name?:  string
	count?: int & >=0
	tags?: [...string]
}
`

func TestUnify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantErr string
	}{
		{name: "valid", data: `name: "games"` + "\n" + `count: 3`},
		{name: "empty document", data: ``},
		{name: "syntax error", data: `name: `, wantErr: "settings.cue"},
		{name: "type mismatch", data: `count: "three"`, wantErr: "count"},
		{name: "constraint violation", data: `count: -1`, wantErr: "count"},
		{name: "closed definition", data: `unknown: true`, wantErr: "unknown"},
		{name: "list element", data: `tags: ["a", 1]`, wantErr: "tags[1]"},
		{name: "size limit", data: `name: "games"`, opts: []Option{WithMaxFileSize(4)}, wantErr: "exceeds maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{WithFilename("settings.cue")}, tt.opts...)
			_, err := Unify(testSchema, "#Settings", []byte(tt.data), opts...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unify() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Unify() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Unify() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestUnify_Decode(t *testing.T) {
	t.Parallel()

	v, err := Unify(testSchema, "#Settings", []byte(`name: "games"`+"\n"+`tags: ["x"]`))
	if err != nil {
		t.Fatalf("Unify() error: %v", err)
	}
	var m map[string]any
	if err := v.Decode(&m); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if m["name"] != "games" {
		t.Errorf("name = %v, want games", m["name"])
	}
	if _, ok := m["count"]; ok {
		t.Errorf("unset optional field decoded: %v", m)
	}
}

func TestUnify_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := Unify(testSchema, "#Nope", []byte(``))
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Errorf("Unify() error = %v, want missing definition", err)
	}
}
