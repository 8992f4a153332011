package handlers

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayomikun-ade/framez/internal/middleware"
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// maxUsernameAttempts bounds the generated-handle retries when a derived
// username collides with an existing one.
const maxUsernameAttempts = 3

// UserHandler handles HTTP requests related to the user directory
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user directory routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users/sync", h.SyncUser)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/username/:username", h.GetUserByUsername)
}

// SyncUser resolves the caller identity to an internal user record,
// creating it on first sight. Subsequent calls patch the mutable profile
// fields; the identity fields are never touched.
func (h *UserHandler) SyncUser(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.SyncUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email := firstNonEmpty(req.Email, identity.Email)
	name := firstNonEmpty(req.Name, identity.Name, emailLocalPart(email), "User")
	username := firstNonEmpty(req.Username, deriveUsername(email), fallbackUsername())
	imageURL := firstNonEmpty(req.ImageURL, identity.Picture)

	existing, err := h.userRepository.GetUserByFirebaseUID(identity.Subject)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if existing != nil {
		existing.Email = email
		existing.Name = name
		existing.Username = username
		if imageURL != "" {
			existing.ImageURL = imageURL
		}
		if err := persistWithUsernameFallback(existing, h.userRepository.UpdateUser); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": existing.ID})
	}

	user := &models.User{
		FirebaseUID: identity.Subject,
		Email:       email,
		Name:        name,
		Username:    username,
		ImageURL:    imageURL,
	}
	if err := persistWithUsernameFallback(user, h.userRepository.CreateUser); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"user_id": user.ID})
}

// persistWithUsernameFallback retries a user write with generated handles
// when the derived username is already taken by another user.
func persistWithUsernameFallback(user *models.User, persist func(*models.User) error) error {
	err := persist(user)
	for attempts := 0; errors.Is(err, models.ErrUsernameTaken) && attempts < maxUsernameAttempts; attempts++ {
		user.Username = fallbackUsername()
		err = persist(user)
	}
	return err
}

// GetProfile retrieves the authenticated user's own record
func (h *UserHandler) GetProfile(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	user, err := h.userRepository.GetUserByFirebaseUID(identity.Subject)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial patch to the authenticated user's
// profile. Only fields present in the body are touched.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByFirebaseUID(identity.Subject)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ImageURL != nil {
		user.ImageURL = *req.ImageURL
	}
	if req.ProfileCompleted != nil {
		user.ProfileCompleted = *req.ProfileCompleted
	}

	// An explicitly chosen username is never silently replaced
	if err := h.userRepository.UpdateUser(user); err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Username already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user_id": user.ID})
}

// GetUser retrieves a user's profile by internal id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByUsername retrieves a user's profile by username
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// deriveUsername builds a handle from the email local-part, stripped to
// lowercase alphanumerics. Returns "" when nothing usable remains.
func deriveUsername(email string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(emailLocalPart(email)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func fallbackUsername() string {
	return "user" + strconv.Itoa(rand.Intn(1000))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
