package server

import (
	"github.com/gofiber/fiber/v2"
)

// HomeFeed handles GET /api/posts. Responses are cached whole for
// cache.HomeFeedTTL by the page cache middleware in front of this handler.
func (s *Server) HomeFeed(c *fiber.Ctx) error {
	feed, err := s.postService.HomeFeed(c.Context(), parsePage(c))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(feed)
}

// GroupFeed handles GET /api/groups/:slug/posts
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	slug := c.Params("slug")

	group, feed, err := s.postService.GroupFeed(c.Context(), slug, parsePage(c))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"group": group,
		"posts": feed.Posts,
		"page":  feed.Page,
	})
}

// ProfileFeed handles GET /api/users/:username/posts. When the request
// carries a valid token the response includes whether that user follows
// the profile's author.
func (s *Server) ProfileFeed(c *fiber.Ctx) error {
	username := c.Params("username")

	author, feed, err := s.postService.ProfileFeed(c.Context(), username, parsePage(c))
	if err != nil {
		return respondWithAppError(c, err)
	}

	following := false
	if viewerID, ok := s.optionalUserID(c); ok {
		following, err = s.followService.IsFollowing(c.Context(), viewerID, author.ID)
		if err != nil {
			return respondWithAppError(c, err)
		}
	}

	followers, err := s.followService.CountFollowers(c.Context(), author.ID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"author":     author,
		"posts":      feed.Posts,
		"page":       feed.Page,
		"post_count": feed.Page.TotalItems,
		"followers":  followers,
		"following":  following,
	})
}

// FollowFeed handles GET /api/follow — posts from authors the current
// user follows.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	feed, err := s.postService.FollowFeed(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(feed)
}
