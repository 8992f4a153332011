package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ayomikun-ade/framez/internal/middleware"
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostHandler(t *testing.T) (*PostHandler, *testutil.MockPostRepository, *testutil.MockUserRepository) {
	t.Helper()
	postRepo := testutil.NewMockPostRepository()
	userRepo := testutil.NewMockUserRepository()
	return NewPostHandler(postRepo, userRepo), postRepo, userRepo
}

func createUser(t *testing.T, userRepo *testutil.MockUserRepository, uid, name, username string) *models.User {
	t.Helper()
	user := &models.User{FirebaseUID: uid, Name: name, Username: username}
	require.NoError(t, userRepo.CreateUser(user))
	return user
}

func TestCreatePost_TrimsContent(t *testing.T) {
	handler, postRepo, userRepo := setupPostHandler(t)
	createUser(t, userRepo, "ext-1", "Ada", "ada")

	req := models.CreatePostRequest{Content: "  hello world  "}
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/posts", req, &middleware.Identity{Subject: "ext-1"})

	require.NoError(t, handler.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "hello world", created.Content)
	assert.Empty(t, created.Likes)
	assert.Empty(t, created.Comments)

	stored, err := postRepo.GetPostByID(c.Request().Context(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "hello world", stored.Content)
	assert.NotNil(t, stored.Likes)
	assert.NotNil(t, stored.Comments)
}

func TestCreatePost_RejectsWhitespaceContent(t *testing.T) {
	handler, _, userRepo := setupPostHandler(t)
	createUser(t, userRepo, "ext-1", "Ada", "ada")

	req := models.CreatePostRequest{Content: "   "}
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/posts", req, &middleware.Identity{Subject: "ext-1"})

	err := handler.CreatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestCreatePost_NoUserRecord(t *testing.T) {
	handler, _, _ := setupPostHandler(t)

	req := models.CreatePostRequest{Content: "hello"}
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/posts", req, &middleware.Identity{Subject: "ghost"})

	err := handler.CreatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestCreatePost_Unauthenticated(t *testing.T) {
	handler, _, _ := setupPostHandler(t)
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/posts", models.CreatePostRequest{Content: "x"}, nil)

	err := handler.CreatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestGetAllPosts_NewestFirst(t *testing.T) {
	handler, postRepo, userRepo := setupPostHandler(t)
	author := createUser(t, userRepo, "ext-1", "Ada", "ada")

	base := time.Now()
	for i, content := range []string{"first", "second", "third"} {
		post := &models.Post{AuthorID: author.ID, Content: content}
		require.NoError(t, postRepo.CreatePost(nil, post))
		// Spread creation times so ordering is unambiguous
		postRepo.Posts[post.ID.Hex()].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/posts", nil, &middleware.Identity{Subject: "ext-1"})
	require.NoError(t, handler.GetAllPosts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var feed []models.EnrichedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 3)
	assert.Equal(t, "third", feed[0].Content)
	assert.Equal(t, "second", feed[1].Content)
	assert.Equal(t, "first", feed[2].Content)
	assert.Equal(t, "Ada", feed[0].AuthorName)
	assert.Equal(t, "ada", feed[0].AuthorUsername)
}

func TestGetPost_MissingAuthorFallback(t *testing.T) {
	handler, postRepo, _ := setupPostHandler(t)

	post := &models.Post{
		AuthorID: 42, // no such user
		Content:  "orphaned",
		Comments: []models.Comment{{UserID: 43, Content: "nice!", CreatedAt: time.Now()}},
	}
	require.NoError(t, postRepo.CreatePost(nil, post))

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/posts/"+post.ID.Hex(), nil, &middleware.Identity{Subject: "ext-1"})
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())

	require.NoError(t, handler.GetPost(c))

	var enriched models.EnrichedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enriched))
	assert.Equal(t, "Unknown", enriched.AuthorName)
	assert.Equal(t, "unknown", enriched.AuthorUsername)
	assert.Empty(t, enriched.AuthorImageURL)
	require.Len(t, enriched.Comments, 1)
	assert.Equal(t, "Unknown", enriched.Comments[0].UserName)
}

func TestGetPost_NotFound(t *testing.T) {
	handler, _, _ := setupPostHandler(t)
	c, _ := newTestContext(t, http.MethodGet, "/api/v1/posts/000000000000000000000000", nil, &middleware.Identity{Subject: "ext-1"})
	c.SetParamNames("id")
	c.SetParamValues("000000000000000000000000")

	err := handler.GetPost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestGetPostsByAuthor(t *testing.T) {
	handler, postRepo, userRepo := setupPostHandler(t)
	ada := createUser(t, userRepo, "ext-1", "Ada", "ada")
	bob := createUser(t, userRepo, "ext-2", "Bob", "bob")

	require.NoError(t, postRepo.CreatePost(nil, &models.Post{AuthorID: ada.ID, Content: "ada's"}))
	require.NoError(t, postRepo.CreatePost(nil, &models.Post{AuthorID: bob.ID, Content: "bob's"}))

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/users/1/posts", nil, &middleware.Identity{Subject: "ext-2"})
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, handler.GetPostsByAuthor(c))

	var posts []models.EnrichedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "ada's", posts[0].Content)
	assert.Equal(t, "Ada", posts[0].AuthorName)
}

func TestDeletePost_NonAuthorForbidden(t *testing.T) {
	handler, postRepo, userRepo := setupPostHandler(t)
	ada := createUser(t, userRepo, "ext-1", "Ada", "ada")
	createUser(t, userRepo, "ext-2", "Bob", "bob")

	post := &models.Post{
		AuthorID: ada.ID,
		Content:  "mine",
		Likes:    []uint{7},
		Comments: []models.Comment{{UserID: 7, Content: "hi", CreatedAt: time.Now()}},
	}
	require.NoError(t, postRepo.CreatePost(nil, post))

	c, _ := newTestContext(t, http.MethodDelete, "/api/v1/posts/"+post.ID.Hex(), nil, &middleware.Identity{Subject: "ext-2"})
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())

	err := handler.DeletePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))

	// Post and its embedded data survive the failed delete
	stored, err := postRepo.GetPostByID(c.Request().Context(), post.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)
	assert.Len(t, stored.Comments, 1)
}

func TestDeletePost_AuthorSucceeds(t *testing.T) {
	handler, postRepo, userRepo := setupPostHandler(t)
	ada := createUser(t, userRepo, "ext-1", "Ada", "ada")

	post := &models.Post{AuthorID: ada.ID, Content: "mine"}
	require.NoError(t, postRepo.CreatePost(nil, post))

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/posts/"+post.ID.Hex(), nil, &middleware.Identity{Subject: "ext-1"})
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())

	require.NoError(t, handler.DeletePost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["deleted"])

	_, err := postRepo.GetPostByID(c.Request().Context(), post.ID.Hex())
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}
