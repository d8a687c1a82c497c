package gemini

import (
	"context"
	"strings"
	"testing"
)

func TestStripPreamble(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Here's your LinkedIn post:\nGreat content here", "Great content here"},
		{"Here is your post: Great content", "Great content"},
		{"Great content without preamble", "Great content without preamble"},
	}
	for _, tc := range cases {
		if got := stripPreamble(tc.input); got != tc.want {
			t.Errorf("stripPreamble(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestGeneratePost_WithoutKeyReturnsPlaceholder(t *testing.T) {
	client := NewClient("", "gemini-2.5-flash", "")

	content, err := client.GeneratePost(context.Background(), "Go concurrency")
	if err != nil {
		t.Fatalf("GeneratePost() unexpected error: %v", err)
	}
	if !strings.Contains(content, "Go concurrency") {
		t.Errorf("placeholder content should mention the prompt, got %q", content)
	}
	if !strings.Contains(content, "#") {
		t.Errorf("placeholder content should include hashtags, got %q", content)
	}
}

func TestSummarize_WithoutKeyTruncates(t *testing.T) {
	client := NewClient("", "gemini-2.5-flash", "")

	long := strings.Repeat("word ", 200)
	summary, err := client.Summarize(context.Background(), long)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if got := len(strings.Fields(summary)); got != 100 {
		t.Errorf("fallback summary length = %d words, want 100", got)
	}
}

func TestGenerateImage_WithoutKeyFails(t *testing.T) {
	client := NewClient("", "", "image-model")

	if _, err := client.GenerateImage(context.Background(), "a gopher", t.TempDir()); err == nil {
		t.Fatal("GenerateImage() expected error without api key")
	}
}
