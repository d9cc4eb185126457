package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/codeforge/codeforge/internal/review"
)

const defaultAPIURL = "https://api.github.com"

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a GitHub client. The token is passed in explicitly;
// GITHUB_API_URL may override the endpoint for GitHub Enterprise setups.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is not set (set GITHUB_TOKEN)")
	}

	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	apiURL = strings.TrimRight(apiURL, "/")

	return &Client{
		token:   token,
		apiURL:  apiURL,
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type prMetadata struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Base  struct {
		Ref string `json:"ref"`
	} `json:"base"`
	Head struct {
		Ref string `json:"ref"`
	} `json:"head"`
}

// GetPR assembles the full review context for a pull request: metadata,
// unified diff, and the list of changed files.
func (c *Client) GetPR(ctx context.Context, repo string, number int) (review.PRContext, error) {
	prctx, err := review.NewPRContext(repo, number)
	if err != nil {
		return review.PRContext{}, err
	}

	url := fmt.Sprintf("%s/repos/%s/pulls/%d", c.apiURL, repo, number)

	var meta prMetadata
	body, err := c.get(ctx, url, "application/vnd.github.v3+json")
	if err != nil {
		return review.PRContext{}, fmt.Errorf("fetching PR #%d in %s: %w", number, repo, err)
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return review.PRContext{}, fmt.Errorf("parsing PR metadata: %w", err)
	}

	diffBody, err := c.get(ctx, url, "application/vnd.github.v3.diff")
	if err != nil {
		return review.PRContext{}, fmt.Errorf("fetching PR diff: %w", err)
	}

	files, err := c.getPRFiles(ctx, repo, number)
	if err != nil {
		return review.PRContext{}, err
	}

	prctx.Title = meta.Title
	prctx.Description = meta.Body
	prctx.BaseBranch = meta.Base.Ref
	prctx.HeadBranch = meta.Head.Ref
	prctx.Diff = string(diffBody)
	prctx.FilesChanged = files
	return prctx, nil
}

type prFile struct {
	Filename string `json:"filename"`
}

func (c *Client) getPRFiles(ctx context.Context, repo string, number int) ([]string, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d/files", c.apiURL, repo, number)

	body, err := c.get(ctx, url, "application/vnd.github.v3+json")
	if err != nil {
		return nil, fmt.Errorf("fetching PR files: %w", err)
	}

	var files []prFile
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("parsing PR files: %w", err)
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Filename
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", accept)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("not found: %s", url)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("authentication failed: %s", string(body))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// reviewEvents maps consensus decisions onto GitHub review event names.
var reviewEvents = map[review.Decision]string{
	review.DecisionApprove:        "APPROVE",
	review.DecisionRequestChanges: "REQUEST_CHANGES",
	review.DecisionComment:        "COMMENT",
}

type reviewRequest struct {
	Body  string `json:"body"`
	Event string `json:"event"`
}

// PostReview posts a review on the pull request with the given body and
// consensus decision.
func (c *Client) PostReview(ctx context.Context, repo string, number int, body string, decision review.Decision) error {
	event, ok := reviewEvents[decision]
	if !ok {
		return fmt.Errorf("no GitHub review event for decision %q", decision)
	}

	url := fmt.Sprintf("%s/repos/%s/pulls/%d/reviews", c.apiURL, repo, number)

	payload, err := json.Marshal(reviewRequest{Body: body, Event: event})
	if err != nil {
		return fmt.Errorf("marshaling review: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("posting review: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return fmt.Errorf("GitHub rejected review (422): %s", string(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo resolves "owner/repo" from the git remote origin URL of the
// current working directory.
func DetectRepo() (string, error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(string(out)))
}

// ParseRemoteURL extracts "owner/repo" from a git remote URL.
func ParseRemoteURL(url string) (string, error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1] + "/" + m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1] + "/" + m[2], nil
	}
	return "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
