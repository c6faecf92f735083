package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDLocal  = "request_id"
)

// RequestID tags every request with a stable identifier, honoring one the
// client already sent. The id is echoed on the response and stored in the
// request_id local for the audit log and the ping endpoint.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Locals(requestIDLocal, id)
		return c.Next()
	}
}
