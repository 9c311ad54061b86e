package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/tool"
)

func OnlyAllowLocal(c *gin.Context) {
	if tool.IsLoopbackIP(c.ClientIP()) {
		c.Next()
	} else {
		c.AbortWithStatusJSON(http.StatusForbidden, tool.FastReturnError("Forbidden"))
	}
}
