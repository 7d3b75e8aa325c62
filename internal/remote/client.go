package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quiclick/qc/internal/models"
)

// Client talks to a QuiClick server over its cookie-session REST API.
type Client struct {
	BaseURL string
	Session string // session cookie value; empty means unauthenticated
	HTTP    *http.Client
}

var _ API = (*Client)(nil)

// New creates a client for the given server.
func New(baseURL, session string) *Client {
	return &Client{
		BaseURL: baseURL,
		Session: session,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Auth ---

// Me returns the authenticated user, or ErrUnauthorized.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "GET", "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the server session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "POST", "/auth/logout", map[string]string{}, nil)
}

// LoginURL returns the browser URL that starts the login flow.
func (c *Client) LoginURL() string {
	return c.BaseURL + "/auth/login"
}

// --- Bookmarks ---

func (c *Client) ListBookmarks(ctx context.Context, folderID *int64) ([]Item, error) {
	path := "/bookmarks"
	if folderID != nil {
		path += "?" + url.Values{"folder_id": {strconv.FormatInt(*folderID, 10)}}.Encode()
	}
	var items []Item
	if err := c.do(ctx, "GET", path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateBookmark(ctx context.Context, req BookmarkCreate) (*Item, error) {
	var item Item
	if err := c.do(ctx, "POST", "/bookmarks", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateBookmark(ctx context.Context, id int64, patch BookmarkPatch) (*Item, error) {
	var item Item
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/bookmarks/%d", id), patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/bookmarks/%d", id), nil, nil)
}

// --- Folders ---

func (c *Client) ListFolders(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, "GET", "/folders", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateFolder(ctx context.Context, req FolderCreate) (*Item, error) {
	var item Item
	if err := c.do(ctx, "POST", "/folders", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateFolder(ctx context.Context, id int64, req FolderPut) (*Item, error) {
	var item Item
	if err := c.do(ctx, "PUT", fmt.Sprintf("/folders/%d", id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/folders/%d", id), nil, nil)
}

func (c *Client) GetFolder(ctx context.Context, id int64) (*FolderWithBookmarks, error) {
	var folder FolderWithBookmarks
	if err := c.do(ctx, "GET", fmt.Sprintf("/folders/%d", id), nil, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// --- Ordering ---

func (c *Client) Reorder(ctx context.Context, items []ReorderItem) error {
	return c.do(ctx, "PATCH", "/reorder", map[string]any{"items": items}, nil)
}

func (c *Client) ReorderBookmarks(ctx context.Context, items []ReorderItem) error {
	return c.do(ctx, "PATCH", "/bookmarks/reorder", map[string]any{"items": items}, nil)
}

// --- Settings ---

func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, "GET", "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) PatchSettings(ctx context.Context, patch SettingsPatch) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, "PATCH", "/settings", patch, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// --- Bulk transfer ---

func (c *Client) Export(ctx context.Context) (*ExportData, error) {
	var data ExportData
	if err := c.do(ctx, "GET", "/export", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) Import(ctx context.Context, data ExportData) error {
	return c.do(ctx, "POST", "/import", data, nil)
}

// --- Delta sync ---

// Changes fetches the delta since ifModifiedSince (empty = full pull).
func (c *Client) Changes(ctx context.Context, ifModifiedSince string) (*ChangesResult, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/changes", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if ifModifiedSince != "" {
		req.Header.Set("If-Modified-Since", ifModifiedSince)
	}
	c.setAuth(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return &ChangesResult{NotModified: true}, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusOK:
		var data ChangesResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode changes: %w", err)
		}
		return &ChangesResult{
			Data:         &data,
			LastModified: resp.Header.Get("Last-Modified"),
		}, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Method: "GET", Path: "/changes", Status: resp.StatusCode, Detail: string(body)}
	}
}

// --- HTTP helpers ---

func (c *Client) setAuth(req *http.Request) {
	if c.Session != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.Session})
	}
}

// do executes a request and decodes the JSON response into result when
// result is non-nil. 401 and 404 map to sentinel errors; other non-2xx
// statuses become a *StatusError.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		detail := truncate(string(respBody), 512)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
		case http.StatusNotFound:
			return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
		default:
			return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Detail: detail}
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
