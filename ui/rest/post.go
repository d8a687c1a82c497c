package rest

import (
	"github.com/gofiber/fiber/v2"

	domainPost "github.com/linkforge/linkforge/domains/post"
	"github.com/linkforge/linkforge/pkg/utils"
)

type Post struct {
	Service domainPost.IPostUsecase
}

func InitRestPost(app fiber.Router, service domainPost.IPostUsecase) Post {
	rest := Post{Service: service}
	app.Post("/create-post", rest.CreatePost)
	app.Get("/posts", rest.Posts)
	app.Get("/stats", rest.Stats)
	return rest
}

func (handler *Post) CreatePost(c *fiber.Ctx) error {
	var request domainPost.CreateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	result, err := handler.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	message := "Post scheduled successfully"
	if result.Status == domainPost.StatusPublished {
		message = "Post published successfully"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"post_id": result.PostID,
		"status":  result.Status,
		"message": message,
	})
}

func (handler *Post) Posts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)

	listing, err := handler.Service.List(c.UserContext(), page, perPage)
	utils.PanicIfNeeded(err)

	return c.JSON(fiber.Map{
		"success":      true,
		"posts":        listing.Posts,
		"total":        listing.Total,
		"pages":        listing.Pages,
		"current_page": listing.CurrentPage,
		"has_next":     listing.HasNext,
		"has_prev":     listing.HasPrev,
	})
}

func (handler *Post) Stats(c *fiber.Ctx) error {
	stats, err := handler.Service.Stats(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
