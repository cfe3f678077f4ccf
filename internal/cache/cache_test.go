package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_FetchesOnMissAndServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var got string
	err := Aside(ctx, "k1", &got, time.Minute, func() error {
		calls++
		got = "from-db"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "from-db", got)
	assert.Equal(t, 1, calls)

	var again string
	err = Aside(ctx, "k1", &again, time.Minute, func() error {
		calls++
		again = "should-not-run"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "from-db", again)
	assert.Equal(t, 1, calls, "second lookup must be served from cache")
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var got int
	for i := 0; i < 2; i++ {
		err := Aside(ctx, "k2", &got, time.Minute, func() error {
			calls++
			got = calls
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls, "without redis every lookup hits the source")
}

func TestPageCache_ServesStaleWithinTTL(t *testing.T) {
	mr := setupMiniredis(t)

	hits := 0
	app := fiber.New()
	app.Use(PageCache(20 * time.Second))
	app.Get("/posts", func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"serving": hits})
	})

	fetch := func() string {
		req := httptest.NewRequest(http.MethodGet, "/posts?page=1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	first := fetch()
	second := fetch()
	assert.Equal(t, first, second, "second request inside TTL must be byte-identical")
	assert.Equal(t, 1, hits, "handler runs once inside the window")

	mr.FastForward(21 * time.Second)

	third := fetch()
	assert.NotEqual(t, first, third, "after expiry the handler output is served again")
	assert.Equal(t, 2, hits)
}

func TestPageCache_KeyIncludesQueryString(t *testing.T) {
	setupMiniredis(t)

	app := fiber.New()
	app.Use(PageCache(time.Minute))
	app.Get("/posts", func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("page=%s", c.Query("page", "1")))
	})

	get := func(url string) string {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	assert.Equal(t, "page=1", get("/posts"))
	assert.Equal(t, "page=2", get("/posts?page=2"), "distinct query strings are distinct cache entries")
}

func TestPageCache_SkipsNonGet(t *testing.T) {
	setupMiniredis(t)

	calls := 0
	app := fiber.New()
	app.Use(PageCache(time.Minute))
	app.Post("/posts", func(c *fiber.Ctx) error {
		calls++
		return c.SendStatus(fiber.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/posts", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
	assert.Equal(t, 2, calls)
}
