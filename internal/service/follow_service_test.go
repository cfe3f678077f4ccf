package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_UnknownAuthor(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())

	_, err := svc.Follow(context.Background(), 1, "ghost")
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFollow_SelfIsNoOp(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 1, Username: username}, nil
	}
	followed := false
	followRepo := noopFollowRepo()
	followRepo.followFn = func(_ context.Context, _, _ uint) error {
		followed = true
		return nil
	}

	svc := NewFollowService(followRepo, userRepo)
	author, err := svc.Follow(context.Background(), 1, "me")
	require.NoError(t, err)
	assert.Equal(t, uint(1), author.ID)
	assert.False(t, followed, "self-follow must not create a subscription")
}

func TestFollow_Subscribes(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 2, Username: username}, nil
	}
	var gotUser, gotAuthor uint
	followRepo := noopFollowRepo()
	followRepo.followFn = func(_ context.Context, userID, authorID uint) error {
		gotUser, gotAuthor = userID, authorID
		return nil
	}

	svc := NewFollowService(followRepo, userRepo)
	_, err := svc.Follow(context.Background(), 1, "author")
	require.NoError(t, err)
	assert.Equal(t, uint(1), gotUser)
	assert.Equal(t, uint(2), gotAuthor)
}

func TestUnfollow_Unsubscribes(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 2, Username: username}, nil
	}
	unfollowed := false
	followRepo := noopFollowRepo()
	followRepo.unfollowFn = func(_ context.Context, userID, authorID uint) error {
		unfollowed = true
		return nil
	}

	svc := NewFollowService(followRepo, userRepo)
	_, err := svc.Unfollow(context.Background(), 1, "author")
	require.NoError(t, err)
	assert.True(t, unfollowed)
}

func TestIsFollowing_AnonymousIsFalse(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.existsFn = func(_ context.Context, _, _ uint) (bool, error) {
		t.Fatal("must not hit the repository for anonymous users")
		return false, nil
	}

	svc := NewFollowService(followRepo, noopUserRepo())
	following, err := svc.IsFollowing(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.False(t, following)
}
