package generate

import "context"

// IGenerateUsecase fronts the AI providers for content and image
// generation. It satisfies the draft lifecycle's ContentService and
// ImageService interfaces.
type IGenerateUsecase interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
}

type ContentRequest struct {
	Prompt string `json:"prompt"`
}

type ImageRequest struct {
	Prompt string `json:"prompt"`
}
