package usecase

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	globalConfig "github.com/linkforge/linkforge/config"
	domainGenerate "github.com/linkforge/linkforge/domains/generate"
	"github.com/linkforge/linkforge/integrations/gemini"
	"github.com/linkforge/linkforge/integrations/openai"
	pkgError "github.com/linkforge/linkforge/pkg/error"
)

type serviceGenerate struct {
	gemini    *gemini.Client
	openai    *openai.ImageClient
	uploadDir string
}

func NewGenerateService(geminiClient *gemini.Client, openaiClient *openai.ImageClient, uploadDir string) domainGenerate.IGenerateUsecase {
	return &serviceGenerate{
		gemini:    geminiClient,
		openai:    openaiClient,
		uploadDir: uploadDir,
	}
}

func (service *serviceGenerate) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", pkgError.ValidationError("prompt is required")
	}
	return service.gemini.GeneratePost(ctx, prompt)
}

// GenerateImage tries OpenAI first, then falls back to Gemini image
// generation saved under the upload directory. Only when both providers
// fail does the call error out.
func (service *serviceGenerate) GenerateImage(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", pkgError.ValidationError("image prompt is required")
	}

	var openaiErr error
	if service.openai.Configured() {
		url, err := service.openai.GenerateImage(ctx, prompt)
		if err == nil {
			return url, nil
		}
		openaiErr = err
		logrus.Warnf("[GENERATE] openai image generation failed, falling back to gemini: %v", err)
	}

	path, err := service.gemini.GenerateImage(ctx, prompt, service.uploadDir)
	if err != nil {
		logrus.Errorf("[GENERATE] gemini image generation failed: %v", err)
		if openaiErr != nil {
			return "", pkgError.ServiceError("both image generation services failed")
		}
		return "", err
	}
	return staticImageURL(path), nil
}

// staticImageURL turns a saved image path into the URL it is served
// under, honoring the configured base path when the app runs behind a
// subpath proxy.
func staticImageURL(path string) string {
	return globalConfig.AppBasePath + "/" + filepath.ToSlash(path)
}

func (service *serviceGenerate) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", pkgError.ValidationError("text is required")
	}
	return service.gemini.Summarize(ctx, text)
}
