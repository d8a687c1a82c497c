// Package apiclient is a typed client for the REST API. It satisfies the
// draft lifecycle's service interfaces so a client-side draft can talk to
// a remote backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/linkforge/linkforge/domains/draft"
	"github.com/linkforge/linkforge/domains/post"
	"github.com/linkforge/linkforge/domains/upload"
	pkgError "github.com/linkforge/linkforge/pkg/error"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	username   string
	password   string
}

// The client slots straight into the draft lifecycle.
var (
	_ draft.ContentService = (*Client)(nil)
	_ draft.ImageService   = (*Client)(nil)
	_ draft.PostService    = (*Client)(nil)
)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// envelope is the shared response wrapper every endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	var response struct {
		envelope
		Content string `json:"content"`
	}
	err := c.postJSON(ctx, "/api/generate-content", map[string]string{"prompt": prompt}, &response)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var response struct {
		envelope
		ImageURL string `json:"image_url"`
	}
	err := c.postJSON(ctx, "/api/generate-image", map[string]string{"prompt": prompt}, &response)
	if err != nil {
		return "", err
	}
	return response.ImageURL, nil
}

func (c *Client) CreatePost(ctx context.Context, request post.CreateRequest) (draft.SubmissionResult, error) {
	var response struct {
		envelope
		PostID uint   `json:"post_id"`
		Status string `json:"status"`
	}
	err := c.postJSON(ctx, "/api/create-post", request, &response)
	if err != nil {
		return draft.SubmissionResult{}, err
	}
	return draft.SubmissionResult{
		PostID:  response.PostID,
		Status:  response.Status,
		Message: response.Message,
	}, nil
}

// UploadPDF sends the document and returns a generation prompt built
// from the server-side summary.
func (c *Client) UploadPDF(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("build upload: %v", err))
	}
	if _, err := part.Write(data); err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("build upload: %v", err))
	}
	if err := writer.Close(); err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("build upload: %v", err))
	}

	var response struct {
		envelope
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/upload-pdf", &body, writer.FormDataContentType(), &response); err != nil {
		return "", err
	}
	return upload.ContentPrompt(response.Summary), nil
}

func (c *Client) Stats(ctx context.Context) (post.Stats, error) {
	var response struct {
		envelope
		Stats post.Stats `json:"stats"`
	}
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, "", &response)
	if err != nil {
		return post.Stats{}, err
	}
	return response.Stats, nil
}

func (c *Client) Posts(ctx context.Context, page, perPage int) (post.Page, error) {
	var response struct {
		envelope
		Posts       []post.Item `json:"posts"`
		Total       int64       `json:"total"`
		Pages       int         `json:"pages"`
		CurrentPage int         `json:"current_page"`
		HasNext     bool        `json:"has_next"`
		HasPrev     bool        `json:"has_prev"`
	}
	path := fmt.Sprintf("/api/posts?page=%d&per_page=%d", page, perPage)
	err := c.do(ctx, http.MethodGet, path, nil, "", &response)
	if err != nil {
		return post.Page{}, err
	}
	return post.Page{
		Posts:       response.Posts,
		Total:       response.Total,
		Pages:       response.Pages,
		CurrentPage: response.CurrentPage,
		HasNext:     response.HasNext,
		HasPrev:     response.HasPrev,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out successChecker) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgError.ServiceError(fmt.Sprintf("encode request: %v", err))
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", out)
}

type successChecker interface {
	ok() (bool, string)
}

func (e *envelope) ok() (bool, string) {
	message := e.Message
	if message == "" {
		message = e.Error
	}
	return e.Success, message
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out successChecker) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgError.ServiceError(fmt.Sprintf("build request: %v", err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgError.ServiceError(fmt.Sprintf("request %s failed: %v", path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgError.ServiceError(fmt.Sprintf("read response from %s: %v", path, err))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgError.ServiceError(fmt.Sprintf("decode response from %s: status %d", path, resp.StatusCode))
	}

	if success, message := out.ok(); !success {
		if message == "" {
			message = fmt.Sprintf("request %s returned status %d", path, resp.StatusCode)
		}
		return pkgError.ServiceError(message)
	}
	return nil
}
