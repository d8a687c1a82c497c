package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	pkgError "github.com/linkforge/linkforge/pkg/error"
)

// Recovery converts handler panics into the JSON error envelope. Typed
// errors keep their status code and error code; anything else becomes a
// plain 500.
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var e error
			if err, ok := r.(error); ok {
				e = err
			} else {
				e = fmt.Errorf("%v", r)
			}

			if genericError, ok := e.(pkgError.GenericError); ok {
				logrus.Warnf("[REST] %s %s: %s", c.Method(), c.Path(), genericError.Error())
				_ = c.Status(genericError.StatusCode()).JSON(fiber.Map{
					"success": false,
					"error":   genericError.ErrCode(),
					"message": genericError.Error(),
				})
				return
			}

			logrus.Errorf("[REST] %s %s panicked: %v", c.Method(), c.Path(), e)
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "INTERNAL_SERVER_ERROR",
				"message": e.Error(),
			})
		}()
		return c.Next()
	}
}
