package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	domainGenerate "github.com/linkforge/linkforge/domains/generate"
	domainUpload "github.com/linkforge/linkforge/domains/upload"
	pkgError "github.com/linkforge/linkforge/pkg/error"
	"github.com/linkforge/linkforge/pkg/utils"
	"github.com/linkforge/linkforge/repository"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type serviceUpload struct {
	repo      repository.IUploadRepository
	generator domainGenerate.IGenerateUsecase
	uploadDir string
}

func NewUploadService(repo repository.IUploadRepository, generator domainGenerate.IGenerateUsecase, uploadDir string) domainUpload.IUploadUsecase {
	return &serviceUpload{
		repo:      repo,
		generator: generator,
		uploadDir: uploadDir,
	}
}

// ProcessPDF stores the upload, extracts its text and produces a summary
// ready to seed a content generation prompt.
func (service *serviceUpload) ProcessPDF(ctx context.Context, filename string, data []byte) (domainUpload.Result, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return domainUpload.Result{}, pkgError.ValidationError("only PDF files are supported")
	}
	if len(data) == 0 {
		return domainUpload.Result{}, pkgError.ValidationError("uploaded file is empty")
	}
	if len(data) > domainUpload.MaxFileSize {
		return domainUpload.Result{}, pkgError.ValidationError("file exceeds the 16 MB upload limit")
	}

	safeName := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(filename))
	storedPath := filepath.Join(service.uploadDir, safeName)
	if err := os.WriteFile(storedPath, data, 0644); err != nil {
		return domainUpload.Result{}, pkgError.InternalServerError(fmt.Sprintf("save upload: %v", err))
	}

	text, err := extractPDFText(data)
	if err != nil {
		_ = utils.RemoveFile(storedPath)
		return domainUpload.Result{}, pkgError.ValidationError(fmt.Sprintf("cannot read PDF: %v", err))
	}
	if strings.TrimSpace(text) == "" {
		_ = utils.RemoveFile(storedPath)
		return domainUpload.Result{}, pkgError.ValidationError("no text content found in the PDF")
	}

	summary, err := service.generator.Summarize(ctx, text)
	if err != nil {
		_ = utils.RemoveFile(storedPath)
		return domainUpload.Result{}, err
	}

	record := repository.UploadedFile{
		Filename:         safeName,
		OriginalFilename: filename,
		FilePath:         storedPath,
		FileSize:         int64(len(data)),
		MimeType:         "application/pdf",
		ExtractedText:    text,
		Summary:          summary,
		Processed:        true,
	}
	if err := service.repo.Create(ctx, &record); err != nil {
		return domainUpload.Result{}, pkgError.InternalServerError(fmt.Sprintf("store upload record: %v", err))
	}

	logrus.Infof("[UPLOAD] processed %s (%s)", filename, humanize.Bytes(uint64(len(data))))
	return domainUpload.Result{
		FileID:        record.ID,
		Filename:      filename,
		Summary:       summary,
		ExtractedText: text,
		SizeLabel:     humanize.Bytes(uint64(len(data))),
		Message:       "PDF processed successfully",
	}, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(base, "_")
}
