package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetUserSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-token")
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q, want %q", got, "application/vnd.github+json")
		}
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent = %q, want %q", got, userAgent)
		}
		if r.URL.Path != "/users/octocat" {
			t.Errorf("path = %q, want /users/octocat", r.URL.Path)
		}
		w.Write([]byte(`{"login":"octocat","followers":42,"public_repos":8}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	user, err := client.GetUser(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.Login != "octocat" || user.Followers != 42 || user.PublicRepos != 8 {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.Name != nil {
		t.Errorf("absent name should stay nil, got %q", *user.Name)
	}
}

func TestNonSuccessBecomesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.GetUser(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error is %T, want *UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", upstream.StatusCode)
	}
}

func TestResponsesAreCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	for i := 0; i < 3; i++ {
		if _, err := client.GetUser(context.Background(), "octocat"); err != nil {
			t.Fatalf("GetUser #%d: %v", i+1, err)
		}
	}
	if hits != 1 {
		t.Errorf("upstream hits = %d, want 1", hits)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			http.Error(w, `{"message":"oops"}`, http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.GetUser(context.Background(), "octocat"); err == nil {
		t.Fatal("expected error on first call")
	}
	user, err := client.GetUser(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("second call should succeed: %v", err)
	}
	if user.Login != "octocat" {
		t.Errorf("login = %q", user.Login)
	}
}
