// Package client is a typed Go client for the cafe menu HTTP API.
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
	"time"

	"cafe-menu/internal/models"
)

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d (%s)", e.Status, e.Code)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs a session token for subsequent requests. Login does
// this automatically.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
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
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "unknown"}
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			if body.Error != "" {
				apiErr.Code = body.Error
			}
			apiErr.Message = body.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Login authenticates and stores the returned session token on the
// client.
func (c *Client) Login(ctx context.Context, username, password string) (*models.PublicUser, error) {
	var resp struct {
		Token string             `json:"token"`
		User  *models.PublicUser `json:"user"`
	}
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

func (c *Client) Verify(ctx context.Context) (*models.PublicUser, error) {
	var resp struct {
		User *models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	req := models.UpdatePasswordRequest{NewPassword: newPassword}
	return c.do(ctx, http.MethodPut, "/api/auth/password", req, nil)
}

func (c *Client) ListMenu(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error) {
	path := "/api/menu"
	if onlyAvailable {
		path += "?available=true"
	}
	var resp struct {
		Data []models.MenuItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var resp struct {
		Data *models.MenuItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/menu/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	var resp struct {
		Data *models.MenuItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/menu", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	var resp struct {
		Data *models.MenuItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/menu/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/menu/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetSettings(ctx context.Context) (*models.CafeSettings, error) {
	var resp struct {
		Data *models.CafeSettings `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/cafe-settings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.CafeSettings, error) {
	var resp struct {
		Data *models.CafeSettings `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/cafe-settings", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Image describes an uploaded file as reported by the API.
type Image struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadImage sends one image as the multipart field "image" and
// returns its served path.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (*Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-image", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out Image
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListImages(ctx context.Context) ([]Image, error) {
	var resp struct {
		Images []Image `json:"images"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/images", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

func (c *Client) DeleteImage(ctx context.Context, filename string) error {
	return c.do(ctx, http.MethodDelete, "/api/images/"+url.PathEscape(filename), nil, nil)
}
