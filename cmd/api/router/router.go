package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tube-digest/cmd/api/dto"
	"tube-digest/cmd/api/handlers"
	"tube-digest/cmd/api/middleware"
	"tube-digest/cmd/api/services"
	_ "tube-digest/docs"
	"tube-digest/web"
)

func New(summarySvc *services.SummaryService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLogging())

	// Embedded UI page
	r.GET("/", func(c *gin.Context) {
		page, err := web.FS.ReadFile("index.html")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ui page unavailable"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/summaries", handlers.SummarizeHandler(summarySvc))
		api.GET("/summaries/:id/download", handlers.DownloadSummaryHandler(summarySvc))
	}

	return r
}
