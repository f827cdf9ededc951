package cookie

import (
	"github.com/gin-gonic/gin"
)

// The platform frontend stores the staff token in a cookie; API clients use
// the Authorization header instead. This service never sets cookies itself.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
