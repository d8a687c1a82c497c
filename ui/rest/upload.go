package rest

import (
	"io"

	"github.com/gofiber/fiber/v2"

	domainUpload "github.com/linkforge/linkforge/domains/upload"
	pkgError "github.com/linkforge/linkforge/pkg/error"
	"github.com/linkforge/linkforge/pkg/utils"
)

type Upload struct {
	Service domainUpload.IUploadUsecase
}

func InitRestUpload(app fiber.Router, service domainUpload.IUploadUsecase) Upload {
	rest := Upload{Service: service}
	app.Post("/upload-pdf", rest.UploadPDF)
	return rest
}

func (handler *Upload) UploadPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		panic(pkgError.ValidationError("file is required"))
	}
	if fileHeader.Size > domainUpload.MaxFileSize {
		panic(pkgError.ValidationError("file exceeds the 16 MB upload limit"))
	}

	file, err := fileHeader.Open()
	utils.PanicIfNeeded(err)
	defer file.Close()

	data, err := io.ReadAll(file)
	utils.PanicIfNeeded(err)

	result, err := handler.Service.ProcessPDF(c.UserContext(), fileHeader.Filename, data)
	utils.PanicIfNeeded(err)

	return c.JSON(fiber.Map{
		"success":        true,
		"file_id":        result.FileID,
		"summary":        result.Summary,
		"extracted_text": result.ExtractedText,
		"message":        result.Message,
	})
}
