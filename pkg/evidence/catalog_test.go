package evidence

import (
	"context"
	"strings"
	"testing"

	"dev-assessment-be/pkg/llm"
)

func TestCatalogDeclarations(t *testing.T) {
	catalog := NewCatalog(nil)
	decls := catalog.Declarations()

	want := []string{
		"get_user_profile",
		"get_recent_repositories",
		"get_language_statistics",
		"get_pull_request_activity",
		"get_commit_activity",
		"get_starred_repositories",
	}
	if len(decls) != len(want) {
		t.Fatalf("got %d declarations, want %d", len(decls), len(want))
	}
	for i, name := range want {
		if decls[i].Name != name {
			t.Errorf("decls[%d].Name = %q, want %q", i, decls[i].Name, name)
		}
		if decls[i].Description == "" {
			t.Errorf("%s has no description", name)
		}
		params := decls[i].Parameters
		if params == nil || params.Properties["username"] == nil {
			t.Fatalf("%s must declare a username parameter", name)
		}
		if len(params.Required) != 1 || params.Required[0] != "username" {
			t.Errorf("%s must require username", name)
		}
	}
}

func TestCatalogExecuteRejectsBadCalls(t *testing.T) {
	catalog := NewCatalog(nil)

	tests := []struct {
		name    string
		call    llm.ToolCall
		wantErr string
	}{
		{
			name:    "unknown tool",
			call:    llm.ToolCall{Name: "get_weather", Arguments: map[string]interface{}{"username": "dev"}},
			wantErr: "unknown tool",
		},
		{
			name:    "missing username",
			call:    llm.ToolCall{Name: "get_user_profile", Arguments: map[string]interface{}{}},
			wantErr: "missing required field",
		},
		{
			name:    "empty username",
			call:    llm.ToolCall{Name: "get_user_profile", Arguments: map[string]interface{}{"username": ""}},
			wantErr: "non-empty string",
		},
		{
			name:    "non-string username",
			call:    llm.ToolCall{Name: "get_user_profile", Arguments: map[string]interface{}{"username": 42}},
			wantErr: "non-empty string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Execute(context.Background(), tt.call)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCatalogExecuteDispatches(t *testing.T) {
	toolset, srv := newTestToolset(map[string]string{
		"/users/dev": `{"login":"dev","followers":3}`,
	})
	defer srv.Close()
	catalog := NewCatalog(toolset)

	payload, err := catalog.Execute(context.Background(), llm.ToolCall{
		Name:      "get_user_profile",
		Arguments: map[string]interface{}{"username": "dev"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	record, ok := payload.(*ProfileRecord)
	if !ok {
		t.Fatalf("payload is %T, want *ProfileRecord", payload)
	}
	if record.Login != "dev" || record.Followers != 3 {
		t.Errorf("unexpected record: %+v", record)
	}
}
