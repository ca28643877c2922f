package router

import (
	"github.com/gin-gonic/gin"
	"github.com/zolaexport/internal/handler"
)

// SetupRouter 配置预览服务的 Gin 引擎和路由
func SetupRouter(contentPath, staticPath string) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(handler.PreviewTemplate)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 其余路径交给预览处理器：先查静态资源，再查内容文档
	preview := handler.NewPreviewHandler(contentPath, staticPath)
	r.NoRoute(preview.Serve)

	return r
}
