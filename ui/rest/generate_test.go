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

	pkgError "github.com/linkforge/linkforge/pkg/error"
	"github.com/linkforge/linkforge/ui/rest/middleware"
)

// fakeGenerateService implements IGenerateUsecase for handler tests.
type fakeGenerateService struct {
	content    string
	imageURL   string
	err        error
	lastPrompt string
}

func (f *fakeGenerateService) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.content, f.err
}

func (f *fakeGenerateService) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.imageURL, f.err
}

func (f *fakeGenerateService) Summarize(_ context.Context, text string) (string, error) {
	return "", f.err
}

func newGenerateTestApp(service *fakeGenerateService) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestGenerate(app.Group("/api"), service)
	return app
}

func TestGenerateContentHandler(t *testing.T) {
	service := &fakeGenerateService{content: "Big launch day! #go"}
	app := newGenerateTestApp(service)

	req := httptest.NewRequest("POST", "/api/generate-content", bytes.NewBufferString(`{"prompt":"announce our launch"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "Big launch day! #go", decoded["content"])
	assert.Equal(t, "Content generated successfully", decoded["message"])
	assert.Equal(t, "announce our launch", service.lastPrompt)
}

func TestGenerateContentHandler_EmptyPromptEnvelope(t *testing.T) {
	app := newGenerateTestApp(&fakeGenerateService{})

	req := httptest.NewRequest("POST", "/api/generate-content", bytes.NewBufferString(`{"prompt":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "VALIDATION_ERROR", decoded["error"])
}

func TestGenerateImageHandler(t *testing.T) {
	service := &fakeGenerateService{imageURL: "/statics/uploads/generated_42.png"}
	app := newGenerateTestApp(service)

	req := httptest.NewRequest("POST", "/api/generate-image", bytes.NewBufferString(`{"prompt":"a rocket over a city"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "/statics/uploads/generated_42.png", decoded["image_url"])
}

func TestGenerateImageHandler_ServiceErrorEnvelope(t *testing.T) {
	service := &fakeGenerateService{err: pkgError.ServiceError("both image generation services failed")}
	app := newGenerateTestApp(service)

	req := httptest.NewRequest("POST", "/api/generate-image", bytes.NewBufferString(`{"prompt":"a rocket"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "SERVICE_ERROR", decoded["error"])
}
