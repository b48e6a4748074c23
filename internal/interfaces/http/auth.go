package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"sharebnb/internal/entities"
)

const identityContextKey = "identity"

type authClaims struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// RequireAuth resolves the requester from the loginToken cookie or the
// Authorization bearer header and stores the identity on the echo context.
// Handlers pass it into the service explicitly; nothing downstream reads
// ambient request state.
func (s *Server) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := ""
		if cookie, err := c.Cookie("loginToken"); err == nil {
			tokenString = cookie.Value
		}
		if tokenString == "" {
			header := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				tokenString = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if tokenString == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}

		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(identityContextKey, entities.Identity{
			ID:       claims.Subject,
			Username: claims.Username,
			Fullname: claims.Fullname,
			Email:    claims.Email,
			IsAdmin:  claims.IsAdmin,
		})

		return next(c)
	}
}

func identityFrom(c echo.Context) entities.Identity {
	identity, _ := c.Get(identityContextKey).(entities.Identity)
	return identity
}
