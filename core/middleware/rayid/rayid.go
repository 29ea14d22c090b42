package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header echoing the request's ray id.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber.Ctx locals key holding the ray id.
const LocalsKey = "ray_id"

// New creates a middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is reused so that ids can be correlated across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
