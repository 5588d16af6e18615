package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MasterGroupNew/Luxeparfum-Backend/httperr"
)

// Context keys set for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// RequireAuth validates the bearer token and, when roles are given, enforces
// that the caller holds one of them. A bad token is 401; a valid token with
// the wrong role is 403.
func RequireAuth(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			httperr.Respond(c, httperr.Auth("missing or invalid token"))
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Respond(c, httperr.Auth("invalid or expired token"))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Respond(c, httperr.Auth("invalid token claims"))
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			httperr.Respond(c, httperr.Auth("invalid token claims"))
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if r == role {
					allowed = true
					break
				}
			}
			if !allowed {
				httperr.Respond(c, httperr.Authorization("access denied"))
				c.Abort()
				return
			}
		}

		c.Set(CtxUserID, uint(userID))
		c.Set(CtxRole, role)
		c.Next()
	}
}

// UserID returns the authenticated user's id from the request context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
