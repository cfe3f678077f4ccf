package cache

import (
	"time"

	"yatube/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// cachedPage is the stored form of a whole cached response.
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache returns a Fiber middleware that serves GET responses from Redis
// for ttl, keyed by the full request URL including the query string. Only
// successful responses are stored. There is no write invalidation: entries
// simply age out, so reads inside the window may be stale.
func PageCache(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		ctx := c.UserContext()
		key := PageKey(c.OriginalURL())

		var page cachedPage
		found, err := GetJSON(ctx, key, &page)
		if err == nil && found {
			middleware.FeedCacheHits.WithLabelValues("hit").Inc()
			c.Set(fiber.HeaderContentType, page.ContentType)
			c.Set("X-Page-Cache", "hit")
			return c.Status(page.Status).Send(page.Body)
		}
		middleware.FeedCacheHits.WithLabelValues("miss").Inc()

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status != fiber.StatusOK {
			return nil
		}

		body := make([]byte, len(c.Response().Body()))
		copy(body, c.Response().Body())
		page = cachedPage{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        body,
		}
		// best-effort store
		_ = SetJSON(ctx, key, page, ttl)
		return nil
	}
}
