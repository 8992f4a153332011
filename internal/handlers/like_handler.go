package handlers

import (
	"errors"
	"net/http"

	"github.com/ayomikun-ade/framez/internal/middleware"
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *LikeHandler {
	return &LikeHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike toggles the caller's membership in the post's liker set and
// returns the resulting state. Calling twice returns to the prior state.
// The underlying write replaces the whole set, so concurrent toggles race
// last-write-wins.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
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

	var likes []uint
	liked := !post.HasLiked(user.ID)
	if liked {
		likes = append(post.Likes, user.ID)
	} else {
		likes = make([]uint, 0, len(post.Likes))
		for _, id := range post.Likes {
			if id != user.ID {
				likes = append(likes, id)
			}
		}
	}

	if err := h.postRepository.UpdateLikes(c.Request().Context(), postID, likes); err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": liked})
}
