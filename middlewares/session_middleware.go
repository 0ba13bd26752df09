// middlewares/session_middleware.go
package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const VisitorCookie = "ptid"

// SessionMiddleware gives every browser a durable uuid visitor identity via
// cookie. This is identity, not authentication: it only keeps one visitor's
// progress separate from another's.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, _ := c.Cookie(VisitorCookie)
		if vid != "" {
			if _, err := uuid.Parse(vid); err != nil {
				vid = "" // drop tampered values, mirror columns are typed uuid
			}
		}
		if vid == "" {
			vid = uuid.NewString()
			// SameSite defaults; flip Secure on when served over TLS
			c.SetCookie(VisitorCookie, vid, 3600*24*365, "/", "", false, true)
		}
		c.Set("userID", vid)
		c.Next()
	}
}
