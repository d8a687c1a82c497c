package repository

import (
	"context"
	"time"

	domainPost "github.com/linkforge/linkforge/domains/post"
	"gorm.io/gorm"
)

// Post is the gorm model backing the posts table. One-time schedules use
// ScheduleTime; recurring ones store the 5-field cron spec plus the
// precomputed NextRunAt the dispatcher polls on. History rows created by
// recurring firings reference their parent through ParentID.
type Post struct {
	ID                uint   `gorm:"primaryKey"`
	Content           string `gorm:"type:text;not null"`
	PostType          string `gorm:"size:20;default:text"`
	ImageURL          string `gorm:"size:500"`
	ScheduleTime      *time.Time
	ScheduleType      string     `gorm:"size:20"`
	CronSpec          string     `gorm:"size:120"`
	NextRunAt         *time.Time `gorm:"index"`
	Status            string     `gorm:"size:20;default:draft;index"`
	RegenerateContent bool
	ContentPrompt     string `gorm:"type:text"`
	RegenerateImage   bool
	ImagePrompt       string `gorm:"type:text"`
	LinkedInPostID    string `gorm:"size:100"`
	ErrorMessage      string `gorm:"type:text"`
	ParentID          *uint  `gorm:"index"`
	PublishedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Item converts the row into the read model served by the posts listing.
func (p Post) Item() domainPost.Item {
	return domainPost.Item{
		ID:             p.ID,
		Content:        p.Content,
		PostType:       p.PostType,
		ImageURL:       p.ImageURL,
		ScheduleTime:   p.ScheduleTime,
		ScheduleType:   p.ScheduleType,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		PublishedAt:    p.PublishedAt,
		LinkedInPostID: p.LinkedInPostID,
		ErrorMessage:   p.ErrorMessage,
	}
}

type IPostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uint) (Post, error)
	List(ctx context.Context, offset, limit int) ([]Post, int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// ListDue returns scheduled posts whose one-time instant or next
	// recurring run is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]Post, error)
	// ListStuckPublishing returns posts stuck in publishing since
	// before the given cutoff.
	ListStuckPublishing(ctx context.Context, cutoff time.Time) ([]Post, error)
}

type postGormRepository struct {
	db *gorm.DB
}

func NewPostGormRepository(db *gorm.DB) IPostRepository {
	return &postGormRepository{db: db}
}

func (r *postGormRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Post{})
}

func (r *postGormRepository) Create(ctx context.Context, post *Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postGormRepository) Update(ctx context.Context, post *Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postGormRepository) GetByID(ctx context.Context, id uint) (Post, error) {
	var post Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	return post, err
}

func (r *postGormRepository) List(ctx context.Context, offset, limit int) ([]Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// CountByStatus counts posts in the given status; an empty status counts
// every post.
func (r *postGormRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&Post{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *postGormRepository) ListDue(ctx context.Context, now time.Time) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("status = ?", domainPost.StatusScheduled).
		Where(
			r.db.Where("cron_spec = '' AND schedule_time IS NOT NULL AND schedule_time <= ?", now).
				Or("cron_spec <> '' AND next_run_at IS NOT NULL AND next_run_at <= ?", now),
		).
		Find(&posts).Error
	return posts, err
}

func (r *postGormRepository) ListStuckPublishing(ctx context.Context, cutoff time.Time) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", domainPost.StatusPublishing, cutoff).
		Find(&posts).Error
	return posts, err
}
