package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkforge/linkforge/domains/draft"
	"github.com/linkforge/linkforge/domains/post"
	"github.com/linkforge/linkforge/domains/schedule"
	pkgError "github.com/linkforge/linkforge/pkg/error"
)

type stubContentService struct {
	calls   int
	content string
	err     error
}

func (s *stubContentService) GenerateContent(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.content, s.err
}

type stubImageService struct {
	calls    int
	imageURL string
	err      error
}

func (s *stubImageService) GenerateImage(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.imageURL, s.err
}

type stubPostService struct {
	calls    int
	requests []post.CreateRequest
	result   draft.SubmissionResult
	err      error
}

func (s *stubPostService) CreatePost(_ context.Context, request post.CreateRequest) (draft.SubmissionResult, error) {
	s.calls++
	s.requests = append(s.requests, request)
	return s.result, s.err
}

func newTestDraftService(content *stubContentService, image *stubImageService, posts *stubPostService) draft.IDraftUsecase {
	if content == nil {
		content = &stubContentService{content: "generated text"}
	}
	if image == nil {
		image = &stubImageService{imageURL: "https://img.example/x.png"}
	}
	if posts == nil {
		posts = &stubPostService{result: draft.SubmissionResult{PostID: 1, Status: post.StatusPublished}}
	}
	return NewDraftService(content, image, posts)
}

func TestDraftBeginGenerate_TextOnly(t *testing.T) {
	content := &stubContentService{content: "a fine post"}
	image := &stubImageService{}
	service := newTestDraftService(content, image, nil)

	current, err := service.BeginGenerate(context.Background(), "write about Go", draft.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, draft.StatusReady, current.Status)
	assert.Equal(t, "a fine post", current.Content)
	assert.Empty(t, current.ImageURL)
	assert.Equal(t, 1, content.calls)
	assert.Zero(t, image.calls, "image service must not be called when image generation is off")
}

func TestDraftBeginGenerate_EmptyPromptMakesNoCalls(t *testing.T) {
	content := &stubContentService{}
	image := &stubImageService{}
	service := newTestDraftService(content, image, nil)

	_, err := service.BeginGenerate(context.Background(), "   ", draft.GenerateOptions{})
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
	assert.Zero(t, content.calls)
	assert.Zero(t, image.calls)
	assert.Equal(t, draft.StatusEmpty, service.Current().Status)
}

func TestDraftBeginGenerate_MissingImagePromptMakesNoCalls(t *testing.T) {
	content := &stubContentService{}
	image := &stubImageService{}
	service := newTestDraftService(content, image, nil)

	_, err := service.BeginGenerate(context.Background(), "a prompt", draft.GenerateOptions{GenerateImage: true})
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
	assert.Zero(t, content.calls, "invalid input must be rejected before any service call")
	assert.Zero(t, image.calls)
}

func TestDraftBeginGenerate_ContentFailureReturnsToEmpty(t *testing.T) {
	content := &stubContentService{err: pkgError.ServiceError("model unavailable")}
	service := newTestDraftService(content, nil, nil)

	_, err := service.BeginGenerate(context.Background(), "a prompt", draft.GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, draft.StatusEmpty, service.Current().Status)
}

func TestDraftBeginGenerate_ImageFailureKeepsReadyText(t *testing.T) {
	content := &stubContentService{content: "text survives"}
	image := &stubImageService{err: pkgError.ServiceError("image api down")}
	service := newTestDraftService(content, image, nil)

	current, err := service.BeginGenerate(context.Background(), "a prompt", draft.GenerateOptions{
		GenerateImage: true,
		ImagePrompt:   "a gopher",
	})
	require.Error(t, err, "the image failure is reported")
	assert.Equal(t, draft.StatusReady, current.Status)
	assert.Equal(t, "text survives", current.Content)
	assert.Empty(t, current.ImageURL)

	// The draft is usable: editing and submitting still work.
	require.NoError(t, service.Edit("edited"))
}

func TestDraftBeginGenerate_RejectedWhileGenerating(t *testing.T) {
	content := newBlockingContentService()
	service := NewDraftService(content, &stubImageService{}, &stubPostService{})

	done := make(chan struct{})
	go func() {
		_, _ = service.BeginGenerate(context.Background(), "slow prompt", draft.GenerateOptions{})
		close(done)
	}()
	<-content.started

	_, err := service.BeginGenerate(context.Background(), "another prompt", draft.GenerateOptions{})
	assert.IsType(t, pkgError.ConcurrentOperationError(""), err)

	close(content.release)
	<-done
}

// blockingContentService parks inside GenerateContent until released so
// tests can observe the Generating state.
type blockingContentService struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingContentService() *blockingContentService {
	return &blockingContentService{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (s *blockingContentService) GenerateContent(_ context.Context, _ string) (string, error) {
	s.started <- struct{}{}
	<-s.release
	return "slow content", nil
}

func TestDraftEdit_RequiresReady(t *testing.T) {
	service := newTestDraftService(nil, nil, nil)

	err := service.Edit("new text")
	assert.IsType(t, pkgError.InvalidStateError(""), err)
}

func TestDraftSubmit_ImmediateRequest(t *testing.T) {
	posts := &stubPostService{result: draft.SubmissionResult{PostID: 7, Status: post.StatusPublished}}
	service := newTestDraftService(&stubContentService{content: "publish me"}, nil, posts)

	_, err := service.BeginGenerate(context.Background(), "prompt", draft.GenerateOptions{})
	require.NoError(t, err)

	result, err := service.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(7), result.PostID)

	require.Len(t, posts.requests, 1)
	request := posts.requests[0]
	assert.Equal(t, "publish me", request.Content)
	assert.Equal(t, post.TypeText, request.PostType)
	assert.True(t, request.PostNow)
	assert.Nil(t, request.ScheduleTime)
	assert.Empty(t, request.CronExpression)

	// Successful submit clears the draft.
	assert.Equal(t, draft.StatusEmpty, service.Current().Status)
	assert.Empty(t, service.Current().Content)
}

func TestDraftSubmit_WeeklyScheduleRequest(t *testing.T) {
	posts := &stubPostService{result: draft.SubmissionResult{PostID: 8, Status: post.StatusScheduled}}
	service := newTestDraftService(&stubContentService{content: "weekly post"}, nil, posts)

	_, err := service.BeginGenerate(context.Background(), "prompt", draft.GenerateOptions{})
	require.NoError(t, err)

	descriptor, err := schedule.FromFormFields(schedule.KindWeekly, map[string]string{
		"time":        "15:00",
		"day_of_week": "1",
	})
	require.NoError(t, err)
	require.NoError(t, service.AttachSchedule(descriptor))

	_, err = service.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, posts.requests, 1)
	request := posts.requests[0]
	require.NotNil(t, request.ScheduleTime)
	assert.Equal(t, "cron:00 15 * * 1", *request.ScheduleTime)
	assert.Equal(t, "weekly", request.ScheduleType)
	require.NotNil(t, request.DayOfWeek)
	assert.Equal(t, 1, *request.DayOfWeek)
	assert.False(t, request.PostNow)
}

func TestDraftSubmit_CustomCronRequest(t *testing.T) {
	posts := &stubPostService{result: draft.SubmissionResult{PostID: 9, Status: post.StatusScheduled}}
	service := newTestDraftService(&stubContentService{content: "cron post"}, nil, posts)

	_, err := service.BeginGenerate(context.Background(), "prompt", draft.GenerateOptions{})
	require.NoError(t, err)

	descriptor, err := schedule.FromFormFields(schedule.KindCron, map[string]string{
		"cron_expression": "*/15 9-17 * * 1-5",
	})
	require.NoError(t, err)
	require.NoError(t, service.AttachSchedule(descriptor))

	_, err = service.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, posts.requests, 1)
	request := posts.requests[0]
	assert.Nil(t, request.ScheduleTime, "raw cron travels in cron_expression only")
	assert.Equal(t, "*/15 9-17 * * 1-5", request.CronExpression)
	assert.Equal(t, "custom-cron", request.ScheduleType)
}

func TestDraftSubmit_FailurePreservesEverything(t *testing.T) {
	posts := &stubPostService{err: pkgError.ServiceError("backend down")}
	content := &stubContentService{content: "precious content"}
	image := &stubImageService{imageURL: "https://img.example/keep.png"}
	service := newTestDraftService(content, image, posts)

	_, err := service.BeginGenerate(context.Background(), "prompt", draft.GenerateOptions{
		GenerateImage: true,
		ImagePrompt:   "a gopher",
	})
	require.NoError(t, err)

	descriptor, err := schedule.FromFormFields(schedule.KindDaily, map[string]string{"time": "09:30"})
	require.NoError(t, err)
	require.NoError(t, service.AttachSchedule(descriptor))
	before := service.Current()

	_, err = service.Submit(context.Background())
	require.Error(t, err)
	assert.IsType(t, pkgError.ServiceError(""), err)

	after := service.Current()
	assert.Equal(t, draft.StatusReady, after.Status)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.ImageURL, after.ImageURL)
	assert.Equal(t, before.Schedule, after.Schedule)

	// A retry works without regenerating anything.
	posts.err = nil
	posts.result = draft.SubmissionResult{PostID: 3, Status: post.StatusScheduled}
	result, err := service.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(3), result.PostID)
	assert.Equal(t, 1, content.calls, "retry must not regenerate content")
}

func TestDraftSubmit_RequiresReady(t *testing.T) {
	service := newTestDraftService(nil, nil, nil)

	_, err := service.Submit(context.Background())
	assert.IsType(t, pkgError.InvalidStateError(""), err)
}

func TestDraftAttachSchedule_AnyStateButSubmitting(t *testing.T) {
	service := newTestDraftService(nil, nil, nil)

	// Empty state accepts a schedule.
	descriptor := schedule.Immediate()
	require.NoError(t, service.AttachSchedule(descriptor))
}

func TestDraftReset_DiscardsStaleGeneration(t *testing.T) {
	content := newBlockingContentService()
	service := NewDraftService(content, &stubImageService{}, &stubPostService{})

	type generateResult struct {
		post draft.Post
		err  error
	}
	results := make(chan generateResult, 1)
	go func() {
		current, err := service.BeginGenerate(context.Background(), "slow prompt", draft.GenerateOptions{})
		results <- generateResult{post: current, err: err}
	}()
	<-content.started

	service.Reset()
	require.Equal(t, draft.StatusEmpty, service.Current().Status)

	close(content.release)
	result := <-results

	// The late response is discarded, not applied to the reset draft.
	require.Error(t, result.err)
	assert.Equal(t, draft.StatusEmpty, service.Current().Status)
	assert.Empty(t, service.Current().Content)
}

func TestDraftReset_FromReady(t *testing.T) {
	service := newTestDraftService(&stubContentService{content: "to discard"}, nil, nil)

	_, err := service.BeginGenerate(context.Background(), "prompt", draft.GenerateOptions{})
	require.NoError(t, err)
	require.Equal(t, draft.StatusReady, service.Current().Status)

	service.Reset()
	current := service.Current()
	assert.Equal(t, draft.StatusEmpty, current.Status)
	assert.Empty(t, current.Content)
	assert.Empty(t, current.ImageURL)
	assert.True(t, current.Schedule.IsImmediate())
}
