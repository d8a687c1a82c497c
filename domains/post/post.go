package post

import (
	"context"
	"time"
)

// Post status lifecycle. Scheduled recurring posts stay in
// StatusScheduled between firings; every firing records a published or
// failed history row.
const (
	StatusDraft      = "draft"
	StatusScheduled  = "scheduled"
	StatusPublishing = "publishing"
	StatusPublished  = "published"
	StatusFailed     = "failed"
)

// Post types.
const (
	TypeText  = "text"
	TypeImage = "image"
)

// CreateRequest is the create-post payload. schedule_time carries the
// wire-encoded schedule (nil for immediate posts); raw cron expressions
// travel in cron_expression with schedule_time left null.
type CreateRequest struct {
	Content        string  `json:"content"`
	PostType       string  `json:"post_type"`
	ImageURL       string  `json:"image_url,omitempty"`
	ScheduleTime   *string `json:"schedule_time"`
	CronExpression string  `json:"cron_expression,omitempty"`
	ScheduleType   string  `json:"schedule_type,omitempty"`
	DayOfWeek      *int    `json:"day_of_week,omitempty"`
	DayOfMonth     *int    `json:"day_of_month,omitempty"`
	PostNow        bool    `json:"post_now,omitempty"`

	// Optional re-generation at fire time for recurring schedules.
	RegenerateContent bool   `json:"regenerate_content,omitempty"`
	ContentPrompt     string `json:"content_prompt,omitempty"`
	RegenerateImage   bool   `json:"regenerate_image,omitempty"`
	ImagePrompt       string `json:"image_prompt,omitempty"`
}

// CreateResult identifies the stored post after a create-post call.
type CreateResult struct {
	PostID uint   `json:"post_id"`
	Status string `json:"status"`
}

// Item is the read-model row returned by the posts listing.
type Item struct {
	ID             uint       `json:"id"`
	Content        string     `json:"content"`
	PostType       string     `json:"post_type"`
	ImageURL       string     `json:"image_url,omitempty"`
	ScheduleTime   *time.Time `json:"schedule_time"`
	ScheduleType   string     `json:"schedule_type,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	PublishedAt    *time.Time `json:"published_at"`
	LinkedInPostID string     `json:"linkedin_post_id,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
}

// Page is a paginated posts listing.
type Page struct {
	Posts       []Item `json:"posts"`
	Total       int64  `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
	HasNext     bool   `json:"has_next"`
	HasPrev     bool   `json:"has_prev"`
}

// Stats are the posting counters shown on the dashboard.
type Stats struct {
	TotalPosts     int64 `json:"total_posts"`
	ScheduledPosts int64 `json:"scheduled_posts"`
	PublishedPosts int64 `json:"published_posts"`
	FailedPosts    int64 `json:"failed_posts"`
}

// PublishResult is the upstream identifier of a published post.
type PublishResult struct {
	PostID string
}

// Publisher delivers finished content to the publishing platform.
type Publisher interface {
	Publish(ctx context.Context, content, imageURL string) (PublishResult, error)
}

type IPostUsecase interface {
	Create(ctx context.Context, request CreateRequest) (CreateResult, error)
	List(ctx context.Context, page, perPage int) (Page, error)
	Stats(ctx context.Context) (Stats, error)
}
