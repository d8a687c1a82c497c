package gemini

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	pkgError "github.com/linkforge/linkforge/pkg/error"
)

const systemPrompt = `You are a professional LinkedIn content creator. Write an engaging LinkedIn post based on the user's prompt.

Rules:
- Keep the post under 1300 characters
- Use a professional but approachable tone
- Include 3-5 relevant hashtags at the end
- Do not include any preamble like "Here's your post" - output only the post itself`

const summaryPrompt = `Summarize the following document in 2-3 concise paragraphs, focusing on the key points a professional audience would care about. Output only the summary itself.`

// preambles the model sometimes prepends despite the instructions.
var preambles = []string{
	"here's your linkedin post:",
	"here's your post:",
	"here is your linkedin post:",
	"here is your post:",
	"sure, here's a linkedin post:",
}

type Client struct {
	apiKey     string
	model      string
	imageModel string
}

func NewClient(apiKey, model, imageModel string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		imageModel: imageModel,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) newSDKClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// GeneratePost writes a LinkedIn post for the given prompt. Without an API
// key a deterministic placeholder post is returned so the rest of the app
// stays usable during local development.
func (c *Client) GeneratePost(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		logrus.Warn("[GEMINI] api key not set, returning placeholder content")
		return placeholderPost(prompt), nil
	}

	client, err := c.newSDKClient(ctx)
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("gemini client: %v", err))
	}

	full := systemPrompt + "\n\nUser prompt: " + prompt
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(full), nil)
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("gemini generate content: %v", err))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", pkgError.ServiceError("gemini returned an empty response")
	}
	return stripPreamble(text), nil
}

// Summarize condenses extracted document text into a short summary.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if !c.Configured() {
		return headSummary(text), nil
	}

	client, err := c.newSDKClient(ctx)
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("gemini client: %v", err))
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(summaryPrompt+"\n\n"+text), nil)
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("gemini summarize: %v", err))
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", pkgError.ServiceError("gemini returned an empty summary")
	}
	return summary, nil
}

// GenerateImage renders an image for the prompt and stores it under dir,
// returning the saved file path.
func (c *Client) GenerateImage(ctx context.Context, prompt, dir string) (string, error) {
	if !c.Configured() {
		return "", pkgError.ServiceError("gemini api key not configured")
	}

	client, err := c.newSDKClient(ctx)
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("gemini client: %v", err))
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	resp, err := client.Models.GenerateContent(ctx, c.imageModel, genai.Text(prompt), config)
	if err != nil {
		return "", pkgError.ServiceError(fmt.Sprintf("gemini generate image: %v", err))
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			path := filepath.Join(dir, fmt.Sprintf("generated_%d.png", time.Now().UnixNano()))
			if err := os.WriteFile(path, part.InlineData.Data, 0644); err != nil {
				return "", pkgError.ServiceError(fmt.Sprintf("save generated image: %v", err))
			}
			return path, nil
		}
	}
	return "", pkgError.ServiceError("gemini response contained no image data")
}

func stripPreamble(text string) string {
	lower := strings.ToLower(text)
	for _, p := range preambles {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(text[len(p):])
		}
	}
	return text
}

func placeholderPost(prompt string) string {
	return fmt.Sprintf("Excited to share some thoughts on %s!\n\nThis is placeholder content generated without an AI provider configured. Set GEMINI_API_KEY to enable real content generation.\n\n#LinkedIn #ContentCreation #Automation", prompt)
}

func headSummary(text string) string {
	words := strings.Fields(text)
	if len(words) > 100 {
		words = words[:100]
	}
	return strings.Join(words, " ")
}
