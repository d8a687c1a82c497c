package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domainPost "github.com/linkforge/linkforge/domains/post"
	"github.com/linkforge/linkforge/domains/schedule"
	pkgError "github.com/linkforge/linkforge/pkg/error"
	"github.com/linkforge/linkforge/repository"
	"github.com/linkforge/linkforge/validations"
)

type servicePost struct {
	repo      repository.IPostRepository
	publisher domainPost.Publisher
}

func NewPostService(repo repository.IPostRepository, publisher domainPost.Publisher) domainPost.IPostUsecase {
	return &servicePost{repo: repo, publisher: publisher}
}

// Create stores the post and either publishes it right away or leaves it
// scheduled for the dispatcher. A failed immediate publish keeps the
// failed row for history but surfaces a ServiceError so the caller can
// retry from an intact draft.
func (service *servicePost) Create(ctx context.Context, request domainPost.CreateRequest) (domainPost.CreateResult, error) {
	if err := validations.ValidateCreatePost(ctx, request); err != nil {
		return domainPost.CreateResult{}, err
	}

	scheduleTime := ""
	if request.ScheduleTime != nil {
		scheduleTime = *request.ScheduleTime
	}
	wire, err := schedule.DecodeWire(scheduleTime, request.CronExpression)
	if err != nil {
		return domainPost.CreateResult{}, err
	}

	record := repository.Post{
		Content:           request.Content,
		PostType:          request.PostType,
		ImageURL:          request.ImageURL,
		ScheduleType:      request.ScheduleType,
		RegenerateContent: request.RegenerateContent,
		ContentPrompt:     request.ContentPrompt,
		RegenerateImage:   request.RegenerateImage,
		ImagePrompt:       request.ImagePrompt,
	}
	if record.PostType == "" {
		record.PostType = domainPost.TypeText
	}
	if record.ScheduleType == "" {
		record.ScheduleType = string(wire.Kind)
	}

	switch wire.Kind {
	case schedule.KindImmediate:
		return service.publishNow(ctx, record)

	case schedule.KindOneTime:
		at := wire.At
		record.ScheduleTime = &at
		record.Status = domainPost.StatusScheduled

	default:
		record.CronSpec = wire.CronSpec
		next, err := wire.NextAfter(time.Now())
		if err != nil {
			return domainPost.CreateResult{}, pkgError.ValidationError(fmt.Sprintf("cannot compute next run: %v", err))
		}
		record.NextRunAt = &next
		record.Status = domainPost.StatusScheduled
	}

	if err := service.repo.Create(ctx, &record); err != nil {
		return domainPost.CreateResult{}, pkgError.InternalServerError(fmt.Sprintf("store post: %v", err))
	}

	logrus.Infof("[POST] scheduled post %d (%s)", record.ID, record.ScheduleType)
	return domainPost.CreateResult{PostID: record.ID, Status: record.Status}, nil
}

func (service *servicePost) publishNow(ctx context.Context, record repository.Post) (domainPost.CreateResult, error) {
	record.Status = domainPost.StatusPublishing
	if err := service.repo.Create(ctx, &record); err != nil {
		return domainPost.CreateResult{}, pkgError.InternalServerError(fmt.Sprintf("store post: %v", err))
	}

	result, err := service.publisher.Publish(ctx, record.Content, record.ImageURL)
	if err != nil {
		record.Status = domainPost.StatusFailed
		record.ErrorMessage = err.Error()
		if updateErr := service.repo.Update(ctx, &record); updateErr != nil {
			logrus.Errorf("[POST] mark post %d failed: %v", record.ID, updateErr)
		}
		return domainPost.CreateResult{}, err
	}

	now := time.Now()
	record.Status = domainPost.StatusPublished
	record.PublishedAt = &now
	record.LinkedInPostID = result.PostID
	if err := service.repo.Update(ctx, &record); err != nil {
		return domainPost.CreateResult{}, pkgError.InternalServerError(fmt.Sprintf("finalize post: %v", err))
	}

	logrus.Infof("[POST] published post %d immediately", record.ID)
	return domainPost.CreateResult{PostID: record.ID, Status: record.Status}, nil
}

func (service *servicePost) List(ctx context.Context, page, perPage int) (domainPost.Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	rows, total, err := service.repo.List(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return domainPost.Page{}, pkgError.InternalServerError(fmt.Sprintf("list posts: %v", err))
	}

	items := make([]domainPost.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Item())
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return domainPost.Page{
		Posts:       items,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}, nil
}

func (service *servicePost) Stats(ctx context.Context) (domainPost.Stats, error) {
	var stats domainPost.Stats
	var err error

	if stats.TotalPosts, err = service.repo.CountByStatus(ctx, ""); err != nil {
		return domainPost.Stats{}, pkgError.InternalServerError(fmt.Sprintf("count posts: %v", err))
	}
	if stats.ScheduledPosts, err = service.repo.CountByStatus(ctx, domainPost.StatusScheduled); err != nil {
		return domainPost.Stats{}, pkgError.InternalServerError(fmt.Sprintf("count posts: %v", err))
	}
	if stats.PublishedPosts, err = service.repo.CountByStatus(ctx, domainPost.StatusPublished); err != nil {
		return domainPost.Stats{}, pkgError.InternalServerError(fmt.Sprintf("count posts: %v", err))
	}
	if stats.FailedPosts, err = service.repo.CountByStatus(ctx, domainPost.StatusFailed); err != nil {
		return domainPost.Stats{}, pkgError.InternalServerError(fmt.Sprintf("count posts: %v", err))
	}
	return stats, nil
}
