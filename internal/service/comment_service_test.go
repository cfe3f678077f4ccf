package service

import (
	"context"
	"strings"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_RequiresText(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{AuthorID: 1, PostID: 1, Text: " "})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateComment_RejectsOverlongText(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		AuthorID: 1,
		PostID:   1,
		Text:     strings.Repeat("a", maxCommentTextLen+1),
	})
	require.Error(t, err)
}

func TestCreateComment_LimitCountsRunesNotBytes(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		AuthorID: 1,
		PostID:   1,
		Text:     strings.Repeat("ю", maxCommentTextLen),
	})
	require.NoError(t, err)

	_, err = svc.CreateComment(context.Background(), CreateCommentInput{
		AuthorID: 1,
		PostID:   1,
		Text:     strings.Repeat("ю", maxCommentTextLen+1),
	})
	require.Error(t, err)
}

func TestCreateComment_MissingPost(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	created := false
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
		created = true
		return nil
	}

	svc := NewCommentService(commentRepo, postRepo)
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{AuthorID: 1, PostID: 404, Text: "hi"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.False(t, created)
}

func TestCreateComment_AttachesToPost(t *testing.T) {
	var created *models.Comment
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 9
		created = c
		return nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		AuthorID: 2,
		PostID:   5,
		Text:     "  Комментарий  ",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.PostID)
	assert.Equal(t, uint(5), *created.PostID)
	assert.Equal(t, "Комментарий", created.Text, "text must be trimmed")
}

func TestListComments_MissingPost(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewCommentService(noopCommentRepo(), postRepo)
	_, err := svc.ListComments(context.Background(), 404)
	require.Error(t, err)
}
