package canvas

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAssignmentsFollowsLinkPagination(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses/42/assignments", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("missing bearer token, got %q", got)
		}
		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/courses/42/assignments?page=2>; rel="next", <%s>; rel="first"`, server.URL, server.URL))
			fmt.Fprint(w, `[{"id":1,"name":"HW 1","published":true},{"id":2,"name":"HW 2","published":true}]`)
		case "2":
			// Last page: no rel="next" link.
			fmt.Fprint(w, `[{"id":3,"name":"HW 3","published":false}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(server.URL, "secret", server.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	assignments, err := client.Assignments(context.Background(), 42)
	if err != nil {
		t.Fatalf("assignments: %v", err)
	}
	if len(assignments) != 3 {
		t.Fatalf("got %d assignments, want 3 (both pages concatenated)", len(assignments))
	}
	if assignments[0].ID != 1 || assignments[2].ID != 3 {
		t.Fatalf("unexpected page order: %+v", assignments)
	}
}

func TestActiveCourses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("enrollment_state") != "active" {
			t.Errorf("missing enrollment_state=active: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `[{"id":42,"name":"Math"},{"id":43,"name":"History"}]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(server.URL+"/", "secret", server.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	courses, err := client.ActiveCourses(context.Background())
	if err != nil {
		t.Fatalf("courses: %v", err)
	}
	if len(courses) != 2 || courses[0].Name != "Math" {
		t.Fatalf("unexpected courses: %+v", courses)
	}
}

func TestNon200IsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "bad-token", server.Client())
	_, err := client.Assignments(context.Background(), 42)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "tok", nil); !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("expected ErrMissingBaseURL, got %v", err)
	}
	if _, err := NewClient("https://canvas.example", "  ", nil); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestNextLink(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{``, ""},
		{`<https://x/page2>; rel="next"`, "https://x/page2"},
		{`<https://x/page1>; rel="first", <https://x/page3>; rel="next"`, "https://x/page3"},
		{`<https://x/page1>; rel="last"`, ""},
	}
	for _, tc := range cases {
		if got := nextLink(tc.header); got != tc.want {
			t.Fatalf("nextLink(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
