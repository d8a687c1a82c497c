package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domainGenerate "github.com/linkforge/linkforge/domains/generate"
	domainPost "github.com/linkforge/linkforge/domains/post"
	"github.com/linkforge/linkforge/domains/schedule"
	"github.com/linkforge/linkforge/pkg/pubworker"
	"github.com/linkforge/linkforge/repository"
)

const (
	// stuckPublishingAfter is how long a post may sit in publishing
	// before the sweep marks it failed.
	stuckPublishingAfter = 30 * time.Minute
)

// SchedulerService polls for due posts and hands publications to the
// worker pool. One-time posts publish once and finalize in place;
// recurring posts spawn a history row per firing and advance NextRunAt.
type SchedulerService struct {
	repo      repository.IPostRepository
	publisher domainPost.Publisher
	generator domainGenerate.IGenerateUsecase
	pool      *pubworker.Pool
	interval  time.Duration
}

func NewSchedulerService(repo repository.IPostRepository, publisher domainPost.Publisher, generator domainGenerate.IGenerateUsecase, pool *pubworker.Pool, interval time.Duration) *SchedulerService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		generator: generator,
		pool:      pool,
		interval:  interval,
	}
}

// Run polls until the context is cancelled.
func (service *SchedulerService) Run(ctx context.Context) {
	logrus.Infof("[SCHEDULER] dispatcher running every %s", service.interval)
	ticker := time.NewTicker(service.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("[SCHEDULER] dispatcher stopped")
			return
		case <-ticker.C:
			if err := service.ProcessDuePosts(ctx); err != nil {
				logrus.Errorf("[SCHEDULER] dispatch pass failed: %v", err)
			}
			service.sweepStuck(ctx)
		}
	}
}

// ProcessDuePosts runs a single dispatch pass.
func (service *SchedulerService) ProcessDuePosts(ctx context.Context) error {
	now := time.Now()
	due, err := service.repo.ListDue(ctx, now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	logrus.Infof("[SCHEDULER] %d posts due", len(due))
	for i := range due {
		post := due[i]
		if post.CronSpec == "" {
			service.dispatchOneTime(ctx, post)
		} else {
			service.dispatchRecurring(ctx, post, now)
		}
	}
	return nil
}

// dispatchOneTime claims the row and publishes it in place.
func (service *SchedulerService) dispatchOneTime(ctx context.Context, post repository.Post) {
	post.Status = domainPost.StatusPublishing
	if err := service.repo.Update(ctx, &post); err != nil {
		logrus.Errorf("[SCHEDULER] claim post %d: %v", post.ID, err)
		return
	}
	service.pool.Submit(pubworker.Job{
		PostID:  post.ID,
		Handler: service.publishJob(post.ID),
	})
}

// dispatchRecurring creates a publishing history row for this firing and
// advances the parent's next run so it fires again.
func (service *SchedulerService) dispatchRecurring(ctx context.Context, parent repository.Post, now time.Time) {
	wire := schedule.WireSchedule{CronSpec: parent.CronSpec}
	next, err := wire.NextAfter(now)
	if err != nil {
		logrus.Errorf("[SCHEDULER] invalid cron spec on post %d, disabling: %v", parent.ID, err)
		parent.Status = domainPost.StatusFailed
		parent.ErrorMessage = "invalid cron expression: " + err.Error()
		if updateErr := service.repo.Update(ctx, &parent); updateErr != nil {
			logrus.Errorf("[SCHEDULER] disable post %d: %v", parent.ID, updateErr)
		}
		return
	}

	parentID := parent.ID
	child := repository.Post{
		Content:           parent.Content,
		PostType:          parent.PostType,
		ImageURL:          parent.ImageURL,
		ScheduleType:      parent.ScheduleType,
		Status:            domainPost.StatusPublishing,
		RegenerateContent: parent.RegenerateContent,
		ContentPrompt:     parent.ContentPrompt,
		RegenerateImage:   parent.RegenerateImage,
		ImagePrompt:       parent.ImagePrompt,
		ParentID:          &parentID,
	}
	if err := service.repo.Create(ctx, &child); err != nil {
		logrus.Errorf("[SCHEDULER] create firing row for post %d: %v", parent.ID, err)
		return
	}

	parent.NextRunAt = &next
	if err := service.repo.Update(ctx, &parent); err != nil {
		logrus.Errorf("[SCHEDULER] advance post %d: %v", parent.ID, err)
	}

	service.pool.Submit(pubworker.Job{
		PostID:  child.ID,
		Handler: service.publishJob(child.ID),
	})
}

// publishJob loads the claimed row, optionally regenerates its content
// and image, publishes and finalizes it.
func (service *SchedulerService) publishJob(postID uint) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		post, err := service.repo.GetByID(ctx, postID)
		if err != nil {
			return err
		}

		if post.RegenerateContent && strings.TrimSpace(post.ContentPrompt) != "" {
			content, err := service.generator.GenerateContent(ctx, post.ContentPrompt)
			if err != nil {
				logrus.Warnf("[SCHEDULER] content regeneration failed for post %d, publishing stored content: %v", post.ID, err)
			} else {
				post.Content = content
			}
		}
		if post.RegenerateImage && strings.TrimSpace(post.ImagePrompt) != "" {
			imageURL, err := service.generator.GenerateImage(ctx, post.ImagePrompt)
			if err != nil {
				logrus.Warnf("[SCHEDULER] image regeneration failed for post %d, keeping stored image: %v", post.ID, err)
			} else {
				post.ImageURL = imageURL
			}
		}

		result, err := service.publisher.Publish(ctx, post.Content, post.ImageURL)
		if err != nil {
			post.Status = domainPost.StatusFailed
			post.ErrorMessage = err.Error()
			if updateErr := service.repo.Update(ctx, &post); updateErr != nil {
				logrus.Errorf("[SCHEDULER] mark post %d failed: %v", post.ID, updateErr)
			}
			return err
		}

		now := time.Now()
		post.Status = domainPost.StatusPublished
		post.PublishedAt = &now
		post.LinkedInPostID = result.PostID
		post.ErrorMessage = ""
		return service.repo.Update(ctx, &post)
	}
}

// sweepStuck fails posts that have been publishing for too long, which
// happens when the process died mid-publication.
func (service *SchedulerService) sweepStuck(ctx context.Context) {
	cutoff := time.Now().Add(-stuckPublishingAfter)
	stuck, err := service.repo.ListStuckPublishing(ctx, cutoff)
	if err != nil {
		logrus.Errorf("[SCHEDULER] stuck sweep failed: %v", err)
		return
	}
	for i := range stuck {
		post := stuck[i]
		post.Status = domainPost.StatusFailed
		post.ErrorMessage = "publication timed out"
		if err := service.repo.Update(ctx, &post); err != nil {
			logrus.Errorf("[SCHEDULER] fail stuck post %d: %v", post.ID, err)
			continue
		}
		logrus.Warnf("[SCHEDULER] post %d stuck in publishing, marked failed", post.ID)
	}
}
