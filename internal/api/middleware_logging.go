package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request at debug level with method, path, status
// and duration.
func RequestLogger(logger *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			}
		}

		logger.Debugw("http request",
			"method", c.Method(),
			"path", c.Path(),
			"remote", c.IP(),
			"status", status,
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
		return err
	}
}
