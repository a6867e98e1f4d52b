package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		in          string
		owner, repo string
		wantErr     bool
	}{
		{in: "https://github.com/laravel/docs", owner: "laravel", repo: "docs"},
		{in: "https://github.com/laravel/docs.git", owner: "laravel", repo: "docs"},
		{in: "git@github.com:vuejs/docs.git", owner: "vuejs", repo: "docs"},
		{in: "vercel/docs", owner: "vercel", repo: "docs"},
		{in: "https://github.com/owner/repo/", owner: "owner", repo: "repo"},
		{in: "not a url", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, c := range cases {
		owner, repo, err := ParseRepoURL(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseRepoURL(%q): expected error, got %s/%s", c.in, owner, repo)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRepoURL(%q): %v", c.in, err)
		}
		if owner != c.owner || repo != c.repo {
			t.Fatalf("ParseRepoURL(%q) = %s/%s, want %s/%s", c.in, owner, repo, c.owner, c.repo)
		}
	}
}

func TestResolveLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets" {
			http.NotFound(w, r)
			return
		}
		if ua := r.Header.Get("User-Agent"); ua != "llms-txt-generator" {
			t.Errorf("unexpected User-Agent: %q", ua)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":        "Widgets",
			"homepage":    "https://widgets.example.com",
			"description": "A widget toolkit.",
		})
	}))
	defer srv.Close()
	oldBase := apiBaseURL
	apiBaseURL = srv.URL
	defer func() { apiBaseURL = oldBase }()

	meta, warning, err := Resolve(context.Background(), srv.Client(), "https://github.com/acme/widgets", Overrides{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if warning != "" {
		t.Fatalf("unexpected warning: %s", warning)
	}
	if meta.Name != "Widgets" || meta.BaseURL != "https://widgets.example.com" || meta.Description != "A widget toolkit." {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestResolveOverridesWinFieldByField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":        "Remote",
			"homepage":    "https://remote.example.com",
			"description": "remote description",
		})
	}))
	defer srv.Close()
	oldBase := apiBaseURL
	apiBaseURL = srv.URL
	defer func() { apiBaseURL = oldBase }()

	meta, _, err := Resolve(context.Background(), srv.Client(), "acme/widgets", Overrides{Name: "Local"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if meta.Name != "Local" {
		t.Fatalf("override lost: %+v", meta)
	}
	if meta.BaseURL != "https://remote.example.com" || meta.Description != "remote description" {
		t.Fatalf("remote fields not filled: %+v", meta)
	}
}

func TestResolveSkipsLookupWhenFullyOverridden(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		http.NotFound(w, r)
	}))
	defer srv.Close()
	oldBase := apiBaseURL
	apiBaseURL = srv.URL
	defer func() { apiBaseURL = oldBase }()

	ov := Overrides{Name: "N", BaseURL: "https://b", Description: "D"}
	meta, warning, err := Resolve(context.Background(), srv.Client(), "acme/widgets", ov)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if hit {
		t.Fatalf("lookup should be skipped when all fields are overridden")
	}
	if warning != "" || meta.Name != "N" || meta.BaseURL != "https://b" || meta.Description != "D" {
		t.Fatalf("unexpected result: %+v warning=%q", meta, warning)
	}
}

func TestResolveLookupFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	oldBase := apiBaseURL
	apiBaseURL = srv.URL
	defer func() { apiBaseURL = oldBase }()

	meta, warning, err := Resolve(context.Background(), srv.Client(), "https://github.com/acme/widgets", Overrides{})
	if err != nil {
		t.Fatalf("Resolve should not fail on lookup errors: %v", err)
	}
	if warning == "" {
		t.Fatalf("expected a warning on lookup failure")
	}
	if meta.Name != "widgets" || meta.BaseURL != "" || meta.Description != "" {
		t.Fatalf("unexpected fallback metadata: %+v", meta)
	}
}

func TestResolveUnparseableURLIsFatal(t *testing.T) {
	_, _, err := Resolve(context.Background(), NewClient(time.Second), "%%%", Overrides{})
	if err == nil {
		t.Fatalf("expected error for unparseable URL")
	}
}
