package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	utils "skillswap/pkg"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// RequireLogin resolves the session cookie and puts the account id on the
// context. Requests without a valid session get a 401.
func RequireLogin(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(token, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Next()
	}
}

// SessionAccount resolves the session cookie when present but never rejects;
// used by routes like GET /api/session that report state instead of guarding.
func SessionAccount(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			if claims, err := utils.ValidateSessionToken(token, secret); err == nil {
				c.Set("account_id", claims.AccountID)
			}
		}
		c.Next()
	}
}

// RequestLogger tags every request with an id and logs method, path, status
// and latency on completion.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Info("request")
	}
}
