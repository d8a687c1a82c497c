package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPost "github.com/linkforge/linkforge/domains/post"
	pkgError "github.com/linkforge/linkforge/pkg/error"
	"github.com/linkforge/linkforge/ui/rest/middleware"
)

// fakePostService implements IPostUsecase for handler tests.
type fakePostService struct {
	createResult domainPost.CreateResult
	createErr    error
	stats        domainPost.Stats
	lastRequest  domainPost.CreateRequest
}

func (f *fakePostService) Create(_ context.Context, request domainPost.CreateRequest) (domainPost.CreateResult, error) {
	f.lastRequest = request
	if f.createErr != nil {
		return domainPost.CreateResult{}, f.createErr
	}
	return f.createResult, nil
}

func (f *fakePostService) List(_ context.Context, page, perPage int) (domainPost.Page, error) {
	return domainPost.Page{CurrentPage: page, Posts: []domainPost.Item{}}, nil
}

func (f *fakePostService) Stats(_ context.Context) (domainPost.Stats, error) {
	return f.stats, nil
}

func newTestApp(service domainPost.IPostUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestPost(app.Group("/api"), service)
	return app
}

func TestCreatePostHandler(t *testing.T) {
	service := &fakePostService{
		createResult: domainPost.CreateResult{PostID: 12, Status: domainPost.StatusScheduled},
	}
	app := newTestApp(service)

	body := `{"content":"hello","post_type":"text","schedule_time":"cron:30 9 * * *","schedule_type":"daily"}`
	req := httptest.NewRequest("POST", "/api/create-post", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, float64(12), decoded["post_id"])
	assert.Equal(t, "scheduled", decoded["status"])

	require.NotNil(t, service.lastRequest.ScheduleTime)
	assert.Equal(t, "cron:30 9 * * *", *service.lastRequest.ScheduleTime)
}

func TestCreatePostHandler_ValidationErrorEnvelope(t *testing.T) {
	service := &fakePostService{createErr: pkgError.ValidationError("content: cannot be blank.")}
	app := newTestApp(service)

	req := httptest.NewRequest("POST", "/api/create-post", bytes.NewBufferString(`{"content":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "VALIDATION_ERROR", decoded["error"])
	assert.Contains(t, decoded["message"], "content")
}

func TestCreatePostHandler_ServiceErrorEnvelope(t *testing.T) {
	service := &fakePostService{createErr: pkgError.ServiceError("linkedin down")}
	app := newTestApp(service)

	req := httptest.NewRequest("POST", "/api/create-post", bytes.NewBufferString(`{"content":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}

func TestStatsHandler(t *testing.T) {
	service := &fakePostService{stats: domainPost.Stats{TotalPosts: 9, FailedPosts: 2}}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var decoded struct {
		Success bool             `json:"success"`
		Stats   domainPost.Stats `json:"stats"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Success)
	assert.Equal(t, int64(9), decoded.Stats.TotalPosts)
	assert.Equal(t, int64(2), decoded.Stats.FailedPosts)
}
