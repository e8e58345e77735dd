package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/smallbiznis/storefront/internal/authctx"
	"github.com/smallbiznis/storefront/internal/config"
)

// AuthMiddleware validates a bearer token and places the subject user id
// on the request context. Handlers behind it can assume a caller identity.
func AuthMiddleware(cfg config.Config) gin.HandlerFunc {
	secret := []byte(cfg.AuthJWTSecret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := authctx.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
