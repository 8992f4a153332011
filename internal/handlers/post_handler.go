package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayomikun-ade/framez/internal/middleware"
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository // For author enrichment on reads
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetAllPosts)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetPostsByAuthor)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post with an empty liker set and comment list
func (h *PostHandler) CreatePost(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content must not be empty")
	}

	user, err := h.userRepository.GetUserByFirebaseUID(identity.Subject)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		AuthorID: user.ID,
		Content:  content,
		ImageURL: req.ImageURL,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetAllPosts retrieves the full feed, newest first, enriched with author
// and commenter display fields
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cache := newUserCache(h.userRepository)
	enriched := make([]models.EnrichedPost, 0, len(posts))
	for _, post := range posts {
		enriched = append(enriched, enrichPost(cache, post))
	}

	return c.JSON(http.StatusOK, enriched)
}

// GetPost retrieves a single enriched post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, enrichPost(newUserCache(h.userRepository), *post))
}

// GetPostsByAuthor retrieves all posts by one author, newest first
func (h *PostHandler) GetPostsByAuthor(c echo.Context) error {
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), uint(authorID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cache := newUserCache(h.userRepository)
	enriched := make([]models.EnrichedPost, 0, len(posts))
	for _, post := range posts {
		enriched = append(enriched, enrichPost(cache, post))
	}

	return c.JSON(http.StatusOK, enriched)
}

// DeletePost deletes a post. Only the author may delete; the embedded
// comments and likes go with the document.
func (h *PostHandler) DeletePost(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	postID := c.Param("id")

	user, err := h.userRepository.GetUserByFirebaseUID(identity.Subject)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, models.ErrNotPostAuthor.Error())
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
