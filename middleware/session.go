package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"webshop/config"
	"webshop/models"
	"webshop/sessions"
)

const sessionContextKey = "session"

// SessionMiddleware attaches the caller's session to the request, creating a
// fresh one (and setting the cookie) for first-time visitors. The session is
// written back to the store after the handler only when something marked it
// dirty.
func SessionMiddleware(store sessions.Store) gin.HandlerFunc {
	cookieName := config.AppConfig.SessionCookie
	maxAge := int(config.AppConfig.SessionTTL.Seconds())

	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, maxAge, "/", "", false, true)
		}

		sess, err := store.Load(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Failed to load session",
			})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()

		if sess.Modified() {
			if err := store.Save(c.Request.Context(), sess); err != nil {
				log.Printf("failed to save session %s: %v", sess.ID(), err)
			}
		}
	}
}

// GetSession returns the session attached by SessionMiddleware.
func GetSession(c *gin.Context) *sessions.Session {
	return c.MustGet(sessionContextKey).(*sessions.Session)
}
