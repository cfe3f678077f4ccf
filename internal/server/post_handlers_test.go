package server

import (
	"net/http"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_RedirectsToProfile(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createHandlerTestUser(t, db, "writer")

	req := jsonRequest(http.MethodPost, "/api/posts", map[string]string{
		"text": "Текст для тестового поста",
	})
	resp, err := app.Test(authed(req, tokenFor(t, s, user)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/users/writer/posts", resp.Header.Get("Location"))

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreatePost_EmptyTextRejected(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createHandlerTestUser(t, db, "writer")

	req := jsonRequest(http.MethodPost, "/api/posts", map[string]string{"text": "   "})
	resp, err := app.Test(authed(req, tokenFor(t, s, user)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count, "rejected post must not be stored")
}

func TestCreatePost_WithGroup(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createHandlerTestUser(t, db, "writer")
	group := &models.Group{Title: "Тестовая группа", Slug: "test-slug", Description: "Тестовое описание"}
	require.NoError(t, db.Create(group).Error)

	req := jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"text":     "Текст для тестового поста",
		"group_id": group.ID,
	})
	resp, err := app.Test(authed(req, tokenFor(t, s, user)))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, group.ID, *post.GroupID)
}

func TestCreatePost_UnknownGroupRejected(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createHandlerTestUser(t, db, "writer")

	req := jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"text":     "text",
		"group_id": 999,
	})
	resp, err := app.Test(authed(req, tokenFor(t, s, user)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdatePost_AuthorEdits(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createHandlerTestUser(t, db, "author")
	post := &models.Post{Text: "before", AuthorID: user.ID}
	require.NoError(t, db.Create(post).Error)

	req := jsonRequest(http.MethodPut, "/api/posts/1", map[string]string{"text": "after"})
	resp, err := app.Test(authed(req, tokenFor(t, s, user)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/posts/1", resp.Header.Get("Location"))

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "after", reloaded.Text)
}

func TestUpdatePost_NonAuthorSilentlyRedirected(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createHandlerTestUser(t, db, "author")
	intruder := createHandlerTestUser(t, db, "intruder")
	post := &models.Post{Text: "original", AuthorID: author.ID}
	require.NoError(t, db.Create(post).Error)

	req := jsonRequest(http.MethodPut, "/api/posts/1", map[string]string{"text": "hijacked"})
	resp, err := app.Test(authed(req, tokenFor(t, s, intruder)))
	require.NoError(t, err)
	// Same redirect as a successful edit, no error leaked.
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/posts/1", resp.Header.Get("Location"))

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "original", reloaded.Text, "non-author edit must not change the post")
}

func TestGetPost_DetailIncludesCommentsAndAuthorCount(t *testing.T) {
	_, app, db := newTestServer(t)
	author := createHandlerTestUser(t, db, "author")

	first := &models.Post{Text: "first", AuthorID: author.ID}
	second := &models.Post{Text: "second", AuthorID: author.ID}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: &first.ID, AuthorID: author.ID, Text: "a comment"}).Error)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/posts/1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Post struct {
			Text   string `json:"text"`
			Author struct {
				Username string `json:"username"`
			} `json:"author"`
		} `json:"post"`
		Comments        []struct{ Text string } `json:"comments"`
		AuthorPostCount int64                   `json:"author_post_count"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "first", body.Post.Text)
	assert.Equal(t, "author", body.Post.Author.Username)
	assert.Len(t, body.Comments, 1)
	assert.Equal(t, int64(2), body.AuthorPostCount)
}

func TestGetPost_Missing404(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/posts/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createHandlerTestUser(t, db, "author")
	intruder := createHandlerTestUser(t, db, "intruder")
	post := &models.Post{Text: "doomed", AuthorID: author.ID}
	require.NoError(t, db.Create(post).Error)

	req := jsonRequest(http.MethodDelete, "/api/posts/1", nil)
	resp, err := app.Test(authed(req, tokenFor(t, s, intruder)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var count int64
	db.Model(&models.Post{}).Count(&count)
	require.Equal(t, int64(1), count)

	req = jsonRequest(http.MethodDelete, "/api/posts/1", nil)
	resp, err = app.Test(authed(req, tokenFor(t, s, author)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}
