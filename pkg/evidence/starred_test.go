package evidence

import (
	"context"
	"testing"
)

func TestStarred(t *testing.T) {
	starred := `[
		{"full_name":"golang/go","language":"Go","stargazers_count":120000,"description":"The Go programming language"},
		{"full_name":"gofiber/fiber","language":"Go","stargazers_count":33000},
		{"full_name":"uber-go/zap","language":"Go","stargazers_count":21000},
		{"full_name":"rust-lang/rust","language":"Rust","stargazers_count":95000},
		{"full_name":"tokio-rs/tokio","language":"Rust","stargazers_count":26000},
		{"full_name":"pallets/flask","language":"Python","stargazers_count":67000},
		{"full_name":"psf/requests","language":"Python","stargazers_count":52000},
		{"full_name":"torvalds/linux","language":"C","stargazers_count":170000},
		{"full_name":"awesome/list","language":null,"stargazers_count":900},
		{"full_name":"redis/redis","language":"C","stargazers_count":66000},
		{"full_name":"nats-io/nats-server","language":"Go","stargazers_count":15000},
		{"full_name":"grafana/grafana","language":"TypeScript","stargazers_count":61000}
	]`
	toolset, srv := newTestToolset(map[string]string{"/users/dev/starred": starred})
	defer srv.Close()

	record, err := toolset.Starred(context.Background(), "dev")
	if err != nil {
		t.Fatalf("Starred: %v", err)
	}

	if record.TotalStarred != 12 {
		t.Errorf("TotalStarred = %d, want 12", record.TotalStarred)
	}
	if len(record.Repositories) != 10 {
		t.Fatalf("Repositories has %d entries, want 10", len(record.Repositories))
	}
	if record.Repositories[0].Name != "golang/go" {
		t.Errorf("Repositories[0].Name = %q, most recently starred must come first", record.Repositories[0].Name)
	}
	if record.Repositories[0].Stars != 120000 {
		t.Errorf("Repositories[0].Stars = %d, want 120000", record.Repositories[0].Stars)
	}

	want := []LanguageCount{
		{Language: "Go", Count: 4},
		{Language: "Rust", Count: 2},
		{Language: "Python", Count: 2},
		{Language: "C", Count: 2},
		{Language: "TypeScript", Count: 1},
	}
	if len(record.TopLanguages) != len(want) {
		t.Fatalf("TopLanguages has %d entries, want %d", len(record.TopLanguages), len(want))
	}
	for i, w := range want {
		if record.TopLanguages[i] != w {
			t.Errorf("TopLanguages[%d] = %+v, want %+v", i, record.TopLanguages[i], w)
		}
	}
}
