package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const userAgent = "llms-txt-generator"

// Metadata holds the resolved project metadata for one run.
// Immutable after Resolve: CLI overrides win field-by-field over the
// remote lookup.
type Metadata struct {
	Name        string
	BaseURL     string
	Description string
	Version     string
}

// Overrides carries caller-supplied metadata fields. Empty fields are
// filled from the remote lookup.
type Overrides struct {
	Name        string
	BaseURL     string
	Description string
	Version     string
}

// about mirrors the fields we read from the repository API response.
type about struct {
	Name        string `json:"name"`
	Homepage    string `json:"homepage"`
	Description string `json:"description"`
}

var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com[:/]([^/]+)/([^/.]+)`),
	regexp.MustCompile(`^([^/]+)/([^/.]+?)$`),
}

// ParseRepoURL extracts owner and repo from a repository URL. It accepts
// https and git@ GitHub URLs as well as a bare "owner/repo" pair.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), ".git")
	for _, p := range repoURLPatterns {
		if m := p.FindStringSubmatch(s); m != nil {
			return m[1], m[2], nil
		}
	}
	return "", "", fmt.Errorf("could not parse repository URL: %s", raw)
}

// NewClient returns an HTTP client with a bounded timeout for the
// anonymous metadata lookup.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// fetchAbout issues one unauthenticated GET against the repository API.
func fetchAbout(ctx context.Context, client *http.Client, owner, repo string) (*about, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", apiBaseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("fetch: unexpected status %s: %s", resp.Status, string(b))
	}
	var a about
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &a, nil
}

// apiBaseURL is a variable so tests can point the lookup at a local server.
var apiBaseURL = "https://api.github.com"

// Resolve merges caller overrides with the remote About lookup. The lookup
// is skipped entirely when name, base URL, and description are all
// overridden. A failed lookup degrades to URL-derived fallbacks and is
// reported through the returned warning; it never fails the run.
func Resolve(ctx context.Context, client *http.Client, repoURL string, ov Overrides) (Metadata, string, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return Metadata{}, "", err
	}

	meta := Metadata{
		Name:        ov.Name,
		BaseURL:     ov.BaseURL,
		Description: ov.Description,
		Version:     ov.Version,
	}
	if meta.Name != "" && meta.BaseURL != "" && meta.Description != "" {
		return meta, "", nil
	}

	warning := ""
	a, err := fetchAbout(ctx, client, owner, repo)
	if err != nil {
		warning = fmt.Sprintf("could not fetch GitHub metadata: %v", err)
		a = &about{Name: repo}
	}
	if meta.Name == "" {
		meta.Name = strings.TrimSpace(a.Name)
		if meta.Name == "" {
			meta.Name = repo
		}
	}
	if meta.BaseURL == "" {
		meta.BaseURL = strings.TrimSpace(a.Homepage)
	}
	if meta.Description == "" {
		meta.Description = strings.TrimSpace(a.Description)
	}
	return meta, warning, nil
}
