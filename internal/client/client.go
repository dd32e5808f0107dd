// Package client is an HTTP client for the KnowYourPlant API. The command
// line frontend drives it, and it satisfies predict.Predictor so the scan
// orchestrator can use the server as its identification backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"knowyourplant/internal/domain"
	"knowyourplant/internal/projection"
)

// APIError carries the status code and message of a failed API call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client talks to a KnowYourPlant server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	token      string
}

// New creates an API client for the given server URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// SetToken attaches a session token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body any, dst any) error {
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
	return c.send(req, dst)
}

func (c *Client) send(req *http.Request, dst any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, dst); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
}

// Login authenticates and stores the session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// GoogleLogin exchanges a Google id-token for a session.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/google", map[string]string{
		"id_token": idToken,
	}, &resp)
	if err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// Profile is the authenticated user's account summary.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Logout invalidates the session and clears the stored token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.token = ""
	return err
}

// Scan uploads an image for identification.
func (c *Client) Scan(ctx context.Context, image []byte, mime string, capture domain.CaptureType) (*domain.ScanResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "capture.jpg")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(image); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	if capture != "" {
		if err := mw.WriteField("capture_type", string(capture)); err != nil {
			return nil, fmt.Errorf("write field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/scan", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result domain.ScanResult
	if err := c.send(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Predict satisfies predict.Predictor by scanning through the server.
func (c *Client) Predict(ctx context.Context, image []byte, mime string) (*domain.ScanResult, error) {
	return c.Scan(ctx, image, mime, domain.CaptureImage)
}

// History returns the user's persisted scans, most recent first.
func (c *Client) History(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	path := "/api/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp struct {
		Items []domain.ScanRecord `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Catalog returns the reference catalog projected through q. Favorite ids are
// sent along so the server can resolve the favorites scope.
func (c *Client) Catalog(ctx context.Context, q projection.Query, favorites []int64) ([]domain.CatalogEntry, error) {
	var resp struct {
		Items []domain.CatalogEntry `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/catalog?"+catalogParams(q, favorites), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CatalogStats returns summary stats for the projected catalog.
func (c *Client) CatalogStats(ctx context.Context, q projection.Query, favorites []int64) (*projection.Stats, error) {
	var stats projection.Stats
	if err := c.do(ctx, http.MethodGet, "/api/catalog/stats?"+catalogParams(q, favorites), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func catalogParams(q projection.Query, favorites []int64) string {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Type != "" {
		params.Set("type", string(q.Type))
	}
	if q.Sort != "" {
		params.Set("sort", string(q.Sort))
	}
	if q.Scope != "" {
		params.Set("scope", string(q.Scope))
	}
	if len(favorites) > 0 {
		ids := make([]string, len(favorites))
		for i, id := range favorites {
			ids[i] = strconv.FormatInt(id, 10)
		}
		params.Set("favorites", strings.Join(ids, ","))
	}
	return params.Encode()
}
