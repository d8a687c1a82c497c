package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// UploadedFile records a processed document upload.
type UploadedFile struct {
	ID               uint   `gorm:"primaryKey"`
	Filename         string `gorm:"size:255;not null"`
	OriginalFilename string `gorm:"size:255;not null"`
	FilePath         string `gorm:"size:500;not null"`
	FileSize         int64
	MimeType         string `gorm:"size:100"`
	ExtractedText    string `gorm:"type:text"`
	Summary          string `gorm:"type:text"`
	Processed        bool
	CreatedAt        time.Time
}

type IUploadRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, file *UploadedFile) error
	GetByID(ctx context.Context, id uint) (UploadedFile, error)
}

type uploadGormRepository struct {
	db *gorm.DB
}

func NewUploadGormRepository(db *gorm.DB) IUploadRepository {
	return &uploadGormRepository{db: db}
}

func (r *uploadGormRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&UploadedFile{})
}

func (r *uploadGormRepository) Create(ctx context.Context, file *UploadedFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *uploadGormRepository) GetByID(ctx context.Context, id uint) (UploadedFile, error) {
	var file UploadedFile
	err := r.db.WithContext(ctx).First(&file, id).Error
	return file, err
}
