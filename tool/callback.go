package tool

import (
	"maps"

	"github.com/gin-gonic/gin"
)

// FastReturnError is the {"error": msg} body every failing endpoint answers with.
func FastReturnError(msg string) gin.H {
	return gin.H{
		"error": msg,
	}
}

func FastReturnSuccessWithData(data any) gin.H {
	return gin.H{
		"data": data,
	}
}

func FastReturnErrorWithData(msg string, data map[string]any) gin.H {
	resp := gin.H{
		"error": msg,
	}
	maps.Copy(resp, data)
	return resp
}

// FastReturnTooLarge reports an upload over limit bytes.
func FastReturnTooLarge(limit int64) gin.H {
	return FastReturnErrorWithData("File too large", map[string]any{"limit": limit})
}
