package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const identityKey = "identity"

// Identity is the verified caller identity extracted from a Firebase ID
// token: the stable subject id plus whatever profile hints the token
// carries. Hints may be empty; the subject never is.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// FirebaseAuthMiddleware creates an Echo middleware that verifies Firebase
// ID tokens and stores the caller Identity in the request context. Requests
// without a valid token never reach the handler.
func FirebaseAuthMiddleware(authClient *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				log.Debug().Err(err).Msg("ID token verification failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			c.Set(identityKey, IdentityFromToken(token))
			return next(c)
		}
	}
}

// IdentityFromToken builds an Identity from a verified Firebase token.
func IdentityFromToken(token *auth.Token) *Identity {
	identity := &Identity{Subject: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.Picture = picture
	}
	return identity
}

// GetIdentity extracts the caller Identity from the context, or nil if the
// request was not authenticated.
func GetIdentity(c echo.Context) *Identity {
	if identity, ok := c.Get(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}

// SetIdentity stores an Identity on the context. Used by tests to stand in
// for the verification middleware.
func SetIdentity(c echo.Context, identity *Identity) {
	c.Set(identityKey, identity)
}
