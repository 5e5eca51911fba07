package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's ray id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that assigns a unique ray id to every request.
// The id is stored in the Fiber locals under "ray_id" and echoed in the
// response headers so logs and responses can be correlated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Honor an id supplied by an upstream proxy if present
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
