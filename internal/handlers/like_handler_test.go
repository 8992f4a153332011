package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ayomikun-ade/framez/internal/middleware"
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggleLike(t *testing.T, handler *LikeHandler, postID, subject string) (bool, error) {
	t.Helper()
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/posts/"+postID+"/like", nil, &middleware.Identity{Subject: subject})
	c.SetParamNames("id")
	c.SetParamValues(postID)

	if err := handler.ToggleLike(c); err != nil {
		return false, err
	}

	var resp struct {
		Liked bool `json:"liked"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Liked, nil
}

func TestToggleLike_DoubleToggleRestoresState(t *testing.T) {
	postRepo := testutil.NewMockPostRepository()
	userRepo := testutil.NewMockUserRepository()
	handler := NewLikeHandler(postRepo, userRepo)

	author := createUser(t, userRepo, "ext-1", "Ada", "ada")
	createUser(t, userRepo, "ext-2", "Bob", "bob")

	post := &models.Post{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, postRepo.CreatePost(nil, post))
	postID := post.ID.Hex()

	liked, err := toggleLike(t, handler, postID, "ext-2")
	require.NoError(t, err)
	assert.True(t, liked)

	stored, err := postRepo.GetPostByID(nil, postID)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, stored.Likes)

	liked, err = toggleLike(t, handler, postID, "ext-2")
	require.NoError(t, err)
	assert.False(t, liked)

	stored, err = postRepo.GetPostByID(nil, postID)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
}

func TestToggleLike_UniqueMembership(t *testing.T) {
	postRepo := testutil.NewMockPostRepository()
	userRepo := testutil.NewMockUserRepository()
	handler := NewLikeHandler(postRepo, userRepo)

	author := createUser(t, userRepo, "ext-1", "Ada", "ada")
	createUser(t, userRepo, "ext-2", "Bob", "bob")
	createUser(t, userRepo, "ext-3", "Eve", "eve")

	post := &models.Post{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, postRepo.CreatePost(nil, post))
	postID := post.ID.Hex()

	for _, subject := range []string{"ext-2", "ext-3"} {
		_, err := toggleLike(t, handler, postID, subject)
		require.NoError(t, err)
	}

	// Bob unlikes; Eve's like is untouched
	liked, err := toggleLike(t, handler, postID, "ext-2")
	require.NoError(t, err)
	assert.False(t, liked)

	stored, err := postRepo.GetPostByID(nil, postID)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, stored.Likes)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	postRepo := testutil.NewMockPostRepository()
	userRepo := testutil.NewMockUserRepository()
	handler := NewLikeHandler(postRepo, userRepo)
	createUser(t, userRepo, "ext-1", "Ada", "ada")

	_, err := toggleLike(t, handler, "000000000000000000000000", "ext-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestToggleLike_NoUserRecord(t *testing.T) {
	postRepo := testutil.NewMockPostRepository()
	handler := NewLikeHandler(postRepo, testutil.NewMockUserRepository())

	post := &models.Post{AuthorID: 1, Content: "hello"}
	require.NoError(t, postRepo.CreatePost(nil, post))

	_, err := toggleLike(t, handler, post.ID.Hex(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	handler := NewLikeHandler(testutil.NewMockPostRepository(), testutil.NewMockUserRepository())
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/posts/x/like", nil, nil)

	err := handler.ToggleLike(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}
