// Package canvas is a minimal client for the Canvas LMS REST API: active
// course listing and paginated assignment listing with bearer-token auth.
package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrMissingBaseURL = errors.New("canvas: base URL is required")
	ErrMissingToken   = errors.New("canvas: access token is required")
)

// Course is one enrollment returned by the courses endpoint.
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Assignment mirrors the fields the sync consumes from the assignments
// endpoint. DueAt is the raw timestamp; a null due date stays nil.
type Assignment struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	DueAt           *time.Time `json:"due_at"`
	HTMLURL         string     `json:"html_url"`
	CourseID        int64      `json:"course_id"`
	PointsPossible  float64    `json:"points_possible"`
	SubmissionTypes []string   `json:"submission_types"`
	Published       bool       `json:"published"`
}

// StatusError is a non-200 response; it is a hard failure for the call that
// produced it but never aborts unrelated courses.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("canvas: unexpected status %d from %s", e.Status, e.URL)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, ErrMissingBaseURL
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: base, token: token, http: httpClient}, nil
}

// ActiveCourses lists the courses the token holder is actively enrolled in.
func (c *Client) ActiveCourses(ctx context.Context) ([]Course, error) {
	url := c.baseURL + "/api/v1/courses?enrollment_state=active"
	var out []Course
	for url != "" {
		var page []Course
		next, err := c.getPage(ctx, url, &page)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		url = next
	}
	return out, nil
}

// Assignments lists every assignment of a course ordered by due date,
// following rel="next" Link headers until the last page.
func (c *Client) Assignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	url := fmt.Sprintf("%s/api/v1/courses/%d/assignments?order_by=due_at", c.baseURL, courseID)
	var out []Assignment
	for url != "" {
		var page []Assignment
		next, err := c.getPage(ctx, url, &page)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		url = next
	}
	return out, nil
}

// getPage fetches one page into dst and returns the rel="next" URL, empty on
// the last page.
func (c *Client) getPage(ctx context.Context, url string, dst any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("canvas: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("canvas: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", &StatusError{Status: resp.StatusCode, URL: url}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return "", fmt.Errorf("canvas: decode %s: %w", url, err)
	}
	return nextLink(resp.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" target from a Link header, per the
// pagination scheme Canvas uses: comma-separated `<url>; rel="kind"` pairs.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(section[0]), "<>")
		for _, param := range section[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return url
			}
		}
	}
	return ""
}
