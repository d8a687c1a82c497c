package draft

import (
	"context"

	"github.com/linkforge/linkforge/domains/post"
	"github.com/linkforge/linkforge/domains/schedule"
)

// Status tracks where the single in-flight draft is in its lifecycle.
type Status string

const (
	StatusEmpty      Status = "empty"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusSubmitting Status = "submitting"
)

// Post is the one mutable draft per editing session. Only the lifecycle
// usecase writes its fields; everyone else gets value copies.
type Post struct {
	Content  string
	ImageURL string
	Schedule schedule.Descriptor
	Status   Status
}

// GenerateOptions steers BeginGenerate. ImagePrompt is required when
// GenerateImage is set.
type GenerateOptions struct {
	GenerateImage bool
	ImagePrompt   string
}

// SubmissionResult reports the created post's identity and status.
type SubmissionResult struct {
	PostID  uint
	Status  string
	Message string
}

// ContentService produces post text from a prompt.
type ContentService interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ImageService produces an image URL from a prompt.
type ImageService interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// PostService accepts the finished draft for publishing or scheduling.
type PostService interface {
	CreatePost(ctx context.Context, request post.CreateRequest) (SubmissionResult, error)
}

// IDraftUsecase is the draft lifecycle state machine. All methods are
// safe to call from a single logical thread of control; re-entrant calls
// while a generation or submission is in flight are rejected rather than
// queued.
type IDraftUsecase interface {
	// BeginGenerate validates the prompts, calls the content service
	// and, when requested, the image service. Image failure is
	// non-fatal: the draft still lands in Ready with text only.
	BeginGenerate(ctx context.Context, prompt string, options GenerateOptions) (Post, error)

	// Edit overwrites the generated text in place. Ready only.
	Edit(newContent string) error

	// AttachSchedule replaces the draft's schedule. An immediate (or
	// zero) descriptor means "publish as soon as submitted". Rejected
	// while submitting.
	AttachSchedule(descriptor schedule.Descriptor) error

	// Submit encodes the schedule, sends the create-post request and
	// clears the draft on success. On failure the draft returns to
	// Ready with every field untouched so a retry needs no re-entry.
	Submit(ctx context.Context) (SubmissionResult, error)

	// Reset force-clears the draft from any state. A response to an
	// operation issued before the reset is discarded when it arrives.
	Reset()

	// Current returns a copy of the draft for display.
	Current() Post
}
