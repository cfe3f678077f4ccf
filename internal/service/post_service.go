package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repository"
)

const maxPostTextLen = 10000

type PostService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type CreatePostInput struct {
	AuthorID   uint
	Text       string
	GroupID    *uint
	Image      string
	ImageThumb string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Text    string
	GroupID *uint
	// ClearGroup detaches the post from its group when true.
	ClearGroup bool
}

// Feed is one page of posts together with its paginator state.
type Feed struct {
	Posts []*models.Post  `json:"posts"`
	Page  pagination.Page `json:"page"`
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	// character limit, not bytes: Cyrillic text is two bytes per rune
	if utf8.RuneCountInString(text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}

	if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Text:       text,
		AuthorID:   in.AuthorID,
		GroupID:    in.GroupID,
		Image:      in.Image,
		ImageThumb: in.ImageThumb,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if utf8.RuneCountInString(text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}
	post.Text = text

	if in.ClearGroup {
		post.GroupID = nil
	} else if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return nil, err
		}
		post.GroupID = in.GroupID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post and returns it so the caller can release
// resources the row pointed at, such as stored image files.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, models.NewUnauthorizedError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return nil, err
	}
	return post, nil
}

// HomeFeed returns one page of all posts, newest first.
func (s *PostService) HomeFeed(ctx context.Context, pageNumber int) (*Feed, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	page := pagination.New(total, pageNumber)
	posts, err := s.postRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Page: page}, nil
}

// GroupFeed returns one page of a group's posts. The group must exist.
func (s *PostService) GroupFeed(ctx context.Context, slug string, pageNumber int) (*models.Group, *Feed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	page := pagination.New(total, pageNumber)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, nil, err
	}
	return group, &Feed{Posts: posts, Page: page}, nil
}

// ProfileFeed returns one page of a user's posts. The user must exist.
func (s *PostService) ProfileFeed(ctx context.Context, username string, pageNumber int) (*models.User, *Feed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	page := pagination.New(total, pageNumber)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, nil, err
	}
	return author, &Feed{Posts: posts, Page: page}, nil
}

// FollowFeed returns one page of posts from authors the user follows.
func (s *PostService) FollowFeed(ctx context.Context, userID uint, pageNumber int) (*Feed, error) {
	authorIDs, err := s.followRepo.AuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	page := pagination.New(total, pageNumber)
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Page: page}, nil
}
