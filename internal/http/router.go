package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talent-track/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	questionnaireH *QuestionnaireHandler,
	resultH *ResultHandler,
	adviceH *AdviceHandler,
	talentH *TalentHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/", JWTAuthMiddleware(jwtSvc))

	questionnaires := authed.Group("/questionnaires")
	questionnaires.GET("", questionnaireH.List)
	questionnaires.GET("/:id", questionnaireH.GetByID)
	questionnaires.POST("/:id/submit", questionnaireH.Submit)
	questionnaires.PUT("/:id", questionnaireH.Submit)

	results := authed.Group("/monthly-results")
	results.GET("", resultH.List)
	results.GET("/current", resultH.Current)
	results.GET("/:id", resultH.GetByID)
	results.GET("/:id/similar", resultH.Similar)
	results.POST("/finalize", resultH.Finalize)

	authed.POST("/advice", adviceH.Advise)

	authed.GET("/talent-result", talentH.Get)
	authed.POST("/talent-result", talentH.Upsert)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
