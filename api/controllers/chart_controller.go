package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/api/middlewares"
	"github.com/moyoez/statusboard/api/models"
	"github.com/moyoez/statusboard/tool"
)

// HandleChart serves the session's live chart drawable.
// GET /chart
func HandleChart(c *gin.Context) {
	session := models.GetOrCreateSession(middlewares.SessionID(c))

	// a concurrent redraw may release the drawable between Current and Bytes; look again once
	for attempt := 0; attempt < 2; attempt++ {
		drawable, generation := session.Chart.Current()
		if drawable == nil {
			break
		}
		if data := drawable.Bytes(); data != nil {
			c.Header("Cache-Control", "no-store")
			c.Header("X-Chart-Generation", strconv.FormatUint(generation, 10))
			c.Data(http.StatusOK, drawable.ContentType(), data)
			return
		}
	}
	c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Chart not available"))
}
