package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayomikun-ade/framez/internal/middleware"
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.AddComment)
}

// AddComment appends a comment to the post's comment list and returns the
// new comment enriched with the commenter's display fields. Comments are
// append-only; there is no edit or delete.
func (h *CommentHandler) AddComment(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	postID := c.Param("id")

	var req models.CreateCommentRequest
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

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := models.Comment{
		UserID:    user.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	comments := append(post.Comments, comment)
	if err := h.postRepository.AppendComments(c.Request().Context(), postID, comments); err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, models.EnrichedComment{
		Comment:      comment,
		UserName:     user.Name,
		UserImageURL: user.ImageURL,
	})
}
