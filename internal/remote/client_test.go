package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoSendsSessionCookie(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		json.NewEncoder(w).Encode(map[string]string{"email": "me@example.com"})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-cookie")
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotCookie != "secret-cookie" {
		t.Errorf("cookie: got %q", gotCookie)
	}
	if user.Email != "me@example.com" {
		t.Errorf("user: %+v", user)
	}
}

func TestDoMapsStatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bookmarks/401":
			w.WriteHeader(http.StatusUnauthorized)
		case "/bookmarks/404":
			w.WriteHeader(http.StatusNotFound)
		case "/bookmarks/422":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"bad url"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "s")
	ctx := context.Background()

	if err := c.DeleteBookmark(ctx, 401); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("401: got %v, want ErrUnauthorized", err)
	}
	if err := c.DeleteBookmark(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("404: got %v, want ErrNotFound", err)
	}

	err := c.DeleteBookmark(ctx, 422)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != 422 {
		t.Fatalf("422: got %v", err)
	}
	if Retryable(err) {
		t.Error("422 must not be retryable")
	}

	err = c.DeleteBookmark(ctx, 500)
	if !errors.As(err, &statusErr) || statusErr.Status != 500 {
		t.Fatalf("500: got %v", err)
	}
	if !Retryable(err) {
		t.Error("500 must be retryable")
	}
}

func TestChangesConditionalFetch(t *testing.T) {
	var gotSince string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSince = r.Header.Get("If-Modified-Since")
		if gotSince == "Sun, 01 Jun 2025 10:00:00 GMT" {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Last-Modified", "Sun, 01 Jun 2025 12:00:00 GMT")
		json.NewEncoder(w).Encode(ChangesResponse{
			Bookmarks:  []Item{{ID: 1, Title: "a"}},
			DeletedIDs: []int64{9},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "s")
	ctx := context.Background()

	result, err := c.Changes(ctx, "")
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	if result.NotModified {
		t.Fatal("expected full payload")
	}
	if result.LastModified != "Sun, 01 Jun 2025 12:00:00 GMT" {
		t.Errorf("last-modified: %q", result.LastModified)
	}
	if len(result.Data.Bookmarks) != 1 || result.Data.DeletedIDs[0] != 9 {
		t.Errorf("payload: %+v", result.Data)
	}

	result, err = c.Changes(ctx, "Sun, 01 Jun 2025 10:00:00 GMT")
	if err != nil {
		t.Fatalf("conditional changes: %v", err)
	}
	if !result.NotModified {
		t.Fatal("expected 304")
	}
	if gotSince != "Sun, 01 Jun 2025 10:00:00 GMT" {
		t.Errorf("header: %q", gotSince)
	}
}

func TestChangesUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "expired")
	if _, err := c.Changes(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestItemTimestampFallsBackToDateAdded(t *testing.T) {
	item := Item{DateAdded: "2025-06-01T09:00:00Z"}
	if got := item.Timestamp(); got != "2025-06-01T09:00:00Z" {
		t.Errorf("fallback: %q", got)
	}
	item.LastUpdated = "2025-06-01T10:00:00Z"
	if got := item.Timestamp(); got != "2025-06-01T10:00:00Z" {
		t.Errorf("lastUpdated wins: %q", got)
	}
}
