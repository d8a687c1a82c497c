package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/linkforge/linkforge/domains/draft"
	"github.com/linkforge/linkforge/domains/post"
	"github.com/linkforge/linkforge/domains/schedule"
	pkgError "github.com/linkforge/linkforge/pkg/error"
)

// serviceDraft holds the single editable draft. The mutex is held only
// around state reads and writes, never across service calls; the token
// counter detects responses that arrive after a reset and discards them.
type serviceDraft struct {
	content draft.ContentService
	image   draft.ImageService
	posts   draft.PostService

	mu    sync.Mutex
	draft draft.Post
	token uint64
}

func NewDraftService(content draft.ContentService, image draft.ImageService, posts draft.PostService) draft.IDraftUsecase {
	return &serviceDraft{
		content: content,
		image:   image,
		posts:   posts,
		draft:   draft.Post{Status: draft.StatusEmpty},
	}
}

func (service *serviceDraft) BeginGenerate(ctx context.Context, prompt string, options draft.GenerateOptions) (draft.Post, error) {
	prompt = strings.TrimSpace(prompt)
	imagePrompt := strings.TrimSpace(options.ImagePrompt)

	// All input validation happens before any state change or service
	// call, so an invalid request leaves the draft exactly as it was.
	if prompt == "" {
		return service.Current(), pkgError.ValidationError("prompt is required")
	}
	if options.GenerateImage && imagePrompt == "" {
		return service.Current(), pkgError.ValidationError("image prompt is required when image generation is enabled")
	}

	service.mu.Lock()
	switch service.draft.Status {
	case draft.StatusGenerating:
		service.mu.Unlock()
		return service.Current(), pkgError.ConcurrentOperationError("a generation is already in progress")
	case draft.StatusSubmitting:
		service.mu.Unlock()
		return service.Current(), pkgError.ConcurrentOperationError("a submission is in progress")
	}
	service.token++
	token := service.token
	service.draft.Status = draft.StatusGenerating
	service.mu.Unlock()

	content, err := service.content.GenerateContent(ctx, prompt)
	if err != nil {
		service.mu.Lock()
		if service.token == token {
			service.draft.Status = draft.StatusEmpty
		}
		current := service.draft
		service.mu.Unlock()
		return current, err
	}

	var imageURL string
	var imageErr error
	if options.GenerateImage {
		imageURL, imageErr = service.image.GenerateImage(ctx, imagePrompt)
		if imageErr != nil {
			logrus.Warnf("[DRAFT] image generation failed, keeping text-only draft: %v", imageErr)
		}
	}

	service.mu.Lock()
	if service.token != token {
		current := service.draft
		service.mu.Unlock()
		logrus.Infof("[DRAFT] discarding generation result issued before a reset")
		return current, pkgError.InvalidStateError("draft was reset while generating")
	}
	service.draft.Content = content
	if options.GenerateImage && imageErr == nil {
		service.draft.ImageURL = imageURL
	}
	service.draft.Status = draft.StatusReady
	current := service.draft
	service.mu.Unlock()

	// Image failure is reported but the draft stays Ready with text.
	return current, imageErr
}

func (service *serviceDraft) Edit(newContent string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.draft.Status != draft.StatusReady {
		return pkgError.InvalidStateError("no generated draft to edit")
	}
	service.draft.Content = newContent
	return nil
}

func (service *serviceDraft) AttachSchedule(descriptor schedule.Descriptor) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.draft.Status == draft.StatusSubmitting {
		return pkgError.InvalidStateError("cannot change the schedule while submitting")
	}
	service.draft.Schedule = descriptor
	return nil
}

func (service *serviceDraft) Submit(ctx context.Context) (draft.SubmissionResult, error) {
	service.mu.Lock()
	if service.draft.Status != draft.StatusReady {
		status := service.draft.Status
		service.mu.Unlock()
		if status == draft.StatusSubmitting {
			return draft.SubmissionResult{}, pkgError.ConcurrentOperationError("a submission is already in progress")
		}
		return draft.SubmissionResult{}, pkgError.InvalidStateError("no ready draft to submit")
	}
	service.token++
	token := service.token
	service.draft.Status = draft.StatusSubmitting
	request := buildCreateRequest(service.draft)
	service.mu.Unlock()

	result, err := service.posts.CreatePost(ctx, request)

	service.mu.Lock()
	defer service.mu.Unlock()

	if service.token != token {
		logrus.Infof("[DRAFT] discarding submission result issued before a reset")
		return draft.SubmissionResult{}, pkgError.InvalidStateError("draft was reset while submitting")
	}
	if err != nil {
		// Back to Ready with content, image and schedule untouched so
		// the user can retry without re-entering anything.
		service.draft.Status = draft.StatusReady
		return draft.SubmissionResult{}, err
	}

	service.draft = draft.Post{Status: draft.StatusEmpty}
	return result, nil
}

func (service *serviceDraft) Reset() {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.token++
	service.draft = draft.Post{Status: draft.StatusEmpty}
}

func (service *serviceDraft) Current() draft.Post {
	service.mu.Lock()
	defer service.mu.Unlock()

	return service.draft
}

func buildCreateRequest(d draft.Post) post.CreateRequest {
	request := post.CreateRequest{
		Content:  d.Content,
		PostType: post.TypeText,
		ImageURL: d.ImageURL,
	}
	if d.ImageURL != "" {
		request.PostType = post.TypeImage
	}

	descriptor := d.Schedule
	switch {
	case descriptor.IsImmediate():
		request.PostNow = true
	case descriptor.Kind == schedule.KindCron:
		request.CronExpression = descriptor.CronExpr
		request.ScheduleType = string(schedule.KindCron)
	default:
		wire := descriptor.WireFormat()
		request.ScheduleTime = &wire
		request.ScheduleType = string(descriptor.Kind)
		if descriptor.Kind == schedule.KindWeekly {
			dow := descriptor.DayOfWeek
			request.DayOfWeek = &dow
		}
		if descriptor.Kind == schedule.KindMonthly {
			dom := descriptor.DayOfMonth
			request.DayOfMonth = &dom
		}
	}
	return request
}
