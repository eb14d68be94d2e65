package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VisitorCookie names the anonymous identity cookie. Carts, placed orders
// and tracking are all keyed by it; no login is required on the customer
// side.
const VisitorCookie = "rda_visitor_id"

const visitorCookieMaxAge = 365 * 24 * 60 * 60

// VisitorID assigns a random visitor id on first contact and keeps it for
// a year. Handlers read it with c.GetString("visitorID").
func VisitorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set("visitorID", id)
		c.Next()
	}
}
