package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"biolink/internal/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *logrus.Logger
}

func NewAccessLogMiddleware(log *logrus.Logger) *AccessLogMiddleware {
	if log == nil {
		log = logger.Discard()
	}
	return &AccessLogMiddleware{logger: log}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		status := c.Response().StatusCode()
		entry := m.logger.WithFields(logrus.Fields{
			"rid":        rid,
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.OriginalURL(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"resp_bytes": len(c.Response().Body()),
			"ua":         c.Get("User-Agent"),
		})
		if status >= fiber.StatusInternalServerError {
			entry.Warn("HTTP access")
		} else {
			entry.Info("HTTP access")
		}

		return err
	}
}
