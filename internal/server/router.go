package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avelkin/prognosia/internal/model"
	"github.com/avelkin/prognosia/internal/pipeline"
)

// NewRouter wires the API routes with the shared middleware stack.
func NewRouter(p *pipeline.Pipeline, cfg model.ServerConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(cfg.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)
	if cfg.RequestsPerSecond > 0 {
		router.Use(rateLimit(newClientLimiter(cfg.RequestsPerSecond, cfg.Burst)))
	}

	h := &handlers{pipeline: p}

	router.GET("/health", h.health)
	router.POST("/diagnose", h.diagnose)
	router.POST("/recommend", h.recommend)
	router.GET("/explain/:disease_id", h.explain)
	router.GET("/xai/diagnosis/:disease_id", h.xaiDiagnosis)
	router.POST("/xai/compare", h.xaiCompare)
	router.GET("/symptoms", h.symptoms)
	router.GET("/diseases", h.diseases)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return router
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
