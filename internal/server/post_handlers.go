package server

import (
	"io"
	"strconv"
	"strings"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text       string `json:"text" form:"text"`
	GroupID    *uint  `json:"group_id" form:"group_id"`
	ClearGroup bool   `json:"clear_group" form:"clear_group"`
}

// parsePostRequest reads the post payload from either a JSON body or a
// multipart form; multipart is the only way to attach an image file.
func (s *Server) parsePostRequest(c *fiber.Ctx) (*postRequest, *service.StoredImage, error) {
	var req postRequest

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.Text = c.FormValue("text")
		if raw := c.FormValue("group_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, nil, models.NewValidationError("Invalid group_id")
			}
			groupID := uint(id)
			req.GroupID = &groupID
		}
		req.ClearGroup = c.FormValue("clear_group") == "true"

		fileHeader, err := c.FormFile("image")
		if err == nil && fileHeader != nil {
			f, err := fileHeader.Open()
			if err != nil {
				return nil, nil, models.NewInternalError(err)
			}
			defer f.Close()
			content, err := io.ReadAll(f)
			if err != nil {
				return nil, nil, models.NewInternalError(err)
			}
			stored, err := s.imageService.Store(service.UploadImageInput{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Content:     content,
			})
			if err != nil {
				return nil, nil, err
			}
			return &req, stored, nil
		}
		return &req, nil, nil
	}

	if err := c.BodyParser(&req); err != nil {
		return nil, nil, models.NewValidationError("Invalid request body")
	}
	return &req, nil, nil
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	req, stored, err := s.parsePostRequest(c)
	if err != nil {
		return respondWithAppError(c, err)
	}

	input := service.CreatePostInput{
		AuthorID: userID,
		Text:     req.Text,
		GroupID:  req.GroupID,
	}
	if stored != nil {
		input.Image = stored.Path
		input.ImageThumb = stored.ThumbPath
	}

	post, err := s.postService.CreatePost(c.Context(), input)
	if err != nil {
		// the upload was stored before validation; do not orphan it
		s.imageService.Remove(stored)
		return respondWithAppError(c, err)
	}

	middleware.PostsCreated.Inc()
	return seeOther(c, profileURL(post.Author.Username))
}

// UpdatePost handles PUT /api/posts/:id. A non-author request is answered
// with the same redirect to the post detail as a successful edit, without
// touching the post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, stored, err := s.parsePostRequest(c)
	if err != nil {
		return respondWithAppError(c, err)
	}

	input := service.UpdatePostInput{
		UserID:     userID,
		PostID:     postID,
		Text:       req.Text,
		GroupID:    req.GroupID,
		ClearGroup: req.ClearGroup,
	}

	post, err := s.postService.UpdatePost(c.Context(), input)
	if err != nil {
		s.imageService.Remove(stored)
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "UNAUTHORIZED" {
			return seeOther(c, postDetailURL(postID))
		}
		return respondWithAppError(c, err)
	}

	if stored != nil {
		replaced := &service.StoredImage{Path: post.Image, ThumbPath: post.ImageThumb}
		post.Image = stored.Path
		post.ImageThumb = stored.ThumbPath
		if err := s.postRepo.Update(c.Context(), post); err != nil {
			s.imageService.Remove(stored)
			return respondWithAppError(c, err)
		}
		s.imageService.Remove(replaced)
	}

	return seeOther(c, postDetailURL(post.ID))
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.DeletePost(c.Context(), userID, postID)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "UNAUTHORIZED" {
			return seeOther(c, postDetailURL(postID))
		}
		return respondWithAppError(c, err)
	}

	s.imageService.Remove(&service.StoredImage{Path: post.Image, ThumbPath: post.ImageThumb})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// GetPost handles GET /api/posts/:id — the post detail page: the post, its
// comments newest first, and how many posts the author has in total.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), post.ID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	authorPostCount, err := s.postRepo.CountByAuthor(c.Context(), post.AuthorID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":              post,
		"comments":          comments,
		"author_post_count": authorPostCount,
	})
}
