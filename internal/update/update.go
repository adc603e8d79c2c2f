// Package update checks whether a newer fraglog release is available.
// It only reports; it never self-installs.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fraglog/fraglog/internal/semver"
)

// DefaultTimeout is the default timeout for the release lookup.
const DefaultTimeout = 5 * time.Second

// DefaultEndpoint is the GitHub latest-release endpoint for fraglog.
const DefaultEndpoint = "https://api.github.com/repos/fraglog/fraglog/releases/latest"

// EndpointFor derives the latest-release API endpoint from a GitHub
// repository URL, so forks can point the update check at themselves via
// the repo_url config key. An empty URL selects the canonical repository.
func EndpointFor(repoURL string) (string, error) {
	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		return DefaultEndpoint, nil
	}

	u, err := url.Parse(repoURL)
	if err != nil {
		return "", fmt.Errorf("parsing repo_url %q: %w", repoURL, err)
	}
	if u.Host != "github.com" {
		return "", fmt.Errorf("repo_url %q: only github.com repositories are supported", repoURL)
	}

	parts := strings.Split(strings.Trim(strings.TrimSuffix(u.Path, ".git"), "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("repo_url %q: expected https://github.com/<owner>/<repo>", repoURL)
	}
	return fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", parts[0], parts[1]), nil
}

// Release describes the latest published release.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker fetches the latest release. Endpoint can be overridden for
// testing or for forks hosted elsewhere.
type Checker struct {
	Endpoint string
	Client   *http.Client
}

// Latest fetches the latest release metadata.
// The context can be used to control timeout and cancellation.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "fraglog-update-check")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release response: %w", err)
	}
	return &release, nil
}

// IsNewer reports whether the release tag names a version strictly greater
// than current. Unparseable versions (dev builds, odd tags) report false:
// better to stay quiet than to nag from a dev build.
func IsNewer(current string, release *Release) bool {
	cur, err := semver.Parse(current)
	if err != nil {
		return false
	}
	latest, err := semver.Parse(strings.TrimSpace(release.TagName))
	if err != nil {
		return false
	}
	return cur.Less(latest)
}
