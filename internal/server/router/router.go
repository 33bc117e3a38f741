package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patisserie-app/admin/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(crud *handlers.CRUDHandler, testData *handlers.TestDataHandler, app *handlers.AppHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		// The test data panel is registered before the generic collection
		// routes so "testdata" never resolves as a collection name.
		api.POST("/testdata", testData.GenerateAll)
		api.DELETE("/testdata", testData.Purge)
		api.GET("/testdata/log", testData.Log)
		api.POST("/testdata/:collection", testData.Generate)

		api.GET("/collections/:collection", crud.List)
		api.POST("/collections/:collection", crud.Create)
		api.PATCH("/collections/:collection/:id", crud.Update)
		api.DELETE("/collections/:collection/:id", crud.DeleteOne)
		api.DELETE("/collections/:collection", crud.DeleteAll)
	}

	r.GET("/app/version", app.Version)
	r.GET("/app/path", app.Path)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
