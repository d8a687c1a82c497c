package rest

import (
	"github.com/gofiber/fiber/v2"

	domainGenerate "github.com/linkforge/linkforge/domains/generate"
	"github.com/linkforge/linkforge/pkg/utils"
	"github.com/linkforge/linkforge/validations"
)

type Generate struct {
	Service domainGenerate.IGenerateUsecase
}

func InitRestGenerate(app fiber.Router, service domainGenerate.IGenerateUsecase) Generate {
	rest := Generate{Service: service}
	app.Post("/generate-content", rest.GenerateContent)
	app.Post("/generate-image", rest.GenerateImage)
	return rest
}

func (handler *Generate) GenerateContent(c *fiber.Ctx) error {
	var request domainGenerate.ContentRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateGenerateContent(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	content, err := handler.Service.GenerateContent(c.UserContext(), request.Prompt)
	utils.PanicIfNeeded(err)

	return c.JSON(fiber.Map{
		"success": true,
		"content": content,
		"message": "Content generated successfully",
	})
}

func (handler *Generate) GenerateImage(c *fiber.Ctx) error {
	var request domainGenerate.ImageRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateGenerateImage(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	imageURL, err := handler.Service.GenerateImage(c.UserContext(), request.Prompt)
	utils.PanicIfNeeded(err)

	return c.JSON(fiber.Map{
		"success":   true,
		"image_url": imageURL,
		"message":   "Image generated successfully",
	})
}
