package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles POST /api/users/:username/follow. Following
// yourself or someone you already follow changes nothing; either way the
// client lands on the follow feed.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	userID := currentUserID(c)
	username := c.Params("username")

	if _, err := s.followService.Follow(c.Context(), userID, username); err != nil {
		return respondWithAppError(c, err)
	}
	return seeOther(c, "/api/follow")
}

// UnfollowAuthor handles POST /api/users/:username/unfollow
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	userID := currentUserID(c)
	username := c.Params("username")

	if _, err := s.followService.Unfollow(c.Context(), userID, username); err != nil {
		return respondWithAppError(c, err)
	}
	return seeOther(c, "/api/follow")
}
