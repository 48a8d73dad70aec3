package evidence

import (
	"net/http"
	"net/http/httptest"

	"dev-assessment-be/pkg/github"
)

// newTestToolset returns a toolset backed by a stub GitHub API. Routes
// map request paths to raw JSON bodies; unknown paths return 404.
func newTestToolset(routes map[string]string) (*Toolset, *httptest.Server) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	return NewToolset(github.NewClient(srv.URL, "")), srv
}
