package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/api/models"
	"github.com/moyoez/statusboard/tool"
)

// UploadRateLimit allows perMinute requests per client IP. Zero disables the limit.
func UploadRateLimit(perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}
		if !models.UploadLimiter(c.ClientIP(), perMinute).Allow() {
			tool.DefaultLogger.Warnf("[RateLimit] Too many uploads from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, tool.FastReturnError("too many requests"))
			return
		}
		c.Next()
	}
}
