// Package api implements the HTTP client for the storage backend. The
// session cookie issued at login is kept in an in-memory cookie jar, so a
// Client behaves like a logged-in browser for the lifetime of the process.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const requestTimeout = 60 * time.Second

// File mirrors the server's file descriptor.
type File struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OriginalName  string    `json:"original_name"`
	Size          int64     `json:"size"`
	MimeType      string    `json:"mime_type"`
	URL           string    `json:"url"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats mirrors the server's aggregate counters.
type Stats struct {
	TotalFiles     int64  `json:"totalFiles"`
	TotalSize      string `json:"totalSize"`
	TotalDownloads int64  `json:"totalDownloads"`
	RecentUploads  int64  `json:"recentUploads"`
}

// User mirrors the server's authenticated-user payload.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL ("http://host:port").
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar init error: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar, Timeout: requestTimeout},
	}, nil
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unexpected response (status %d)", resp.StatusCode)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("%s", env.Error)
		}
		return fmt.Errorf("request failed (status %d)", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", credentials{Email: email, Password: password}, nil)
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, nil)
}

// Logout clears the server-side session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me returns the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Upload sends the file contents as a multipart request.
func (c *Client) Upload(ctx context.Context, fileName, title, mimeType string, body io.Reader) (*File, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fw, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, body); err != nil {
		return nil, err
	}
	if title != "" {
		if err := w.WriteField("title", title); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		File File `json:"file"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.File, nil
}

// ListFiles fetches one page of the catalog.
func (c *Client) ListFiles(ctx context.Context, limit, offset int) ([]File, error) {
	var out struct {
		Files []File `json:"files"`
	}
	path := fmt.Sprintf("/files?limit=%d&offset=%d", limit, offset)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Stats fetches the aggregate usage counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out struct {
		Stats Stats `json:"stats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// Ping checks server reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
