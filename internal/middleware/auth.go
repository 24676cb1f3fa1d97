package middleware

import (
	"net/http"
	"strings"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/repositories"
	"contacts_backend/pkg/apperrors"
	"contacts_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Authenticate validates the bearer token. Beyond signature and expiry it
// checks the token against the one stored on the account, so a token
// invalidated by logout or overwritten by a newer login stops working even
// before it expires.
func Authenticate(tokens *auth.TokenIssuer, accounts repositories.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		account, err := accounts.FindByID(c.Request.Context(), claims.AccountID)
		if err != nil || account.Token != tokenStr {
			abortUnauthorized(c)
			return
		}

		c.Set(string(contextkeys.AccountIDKey), account.ID)
		c.Set(string(contextkeys.TokenKey), tokenStr)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: apperrors.NewUnauthorizedError("Not authorized"),
	})
}
