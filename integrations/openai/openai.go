package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	pkgError "github.com/linkforge/linkforge/pkg/error"
)

type ImageClient struct {
	apiKey string
	model  string
}

func NewImageClient(apiKey, model string) *ImageClient {
	return &ImageClient{apiKey: apiKey, model: model}
}

func (c *ImageClient) Configured() bool {
	return c.apiKey != ""
}

// GenerateImage asks the images API for a single 1024x1024 render and
// returns the hosted URL.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", pkgError.ServiceError("openai api key not configured")
	}

	client := openai.NewClient(option.WithAPIKey(c.apiKey))
	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(c.model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("openai generate image: %v", err))
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", pkgError.ServiceError("openai returned no image data")
	}
	return resp.Data[0].URL, nil
}
