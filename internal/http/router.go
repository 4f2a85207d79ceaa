package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/metrics"
	"github.com/tuankiet247/OpenDayGame/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas del juego.
// limiter puede ser nil: las rutas del oraculo quedan sin limite.
func NewRouter(logger *zap.Logger, quizH *QuizHandler, limiter service.RateLimiter) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), metricsMiddleware())

	r.GET("/healthz", quizH.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/categories", quizH.Categories)

	// Rutas que pueden llamar al oraculo; preguntas y resultados tienen cuotas separadas.
	questions := rateLimitMiddleware(limiter, service.ScopeQuestion)
	api.POST("/generate-question", questions, quizH.GenerateQuestion)
	api.POST("/generate-open-question", questions, quizH.GenerateOpenQuestion)
	api.POST("/submit-result", rateLimitMiddleware(limiter, service.ScopeResult), quizH.SubmitResult)

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

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// rateLimitMiddleware corta con 429 cuando el cliente supera su cuota de scope por ventana.
func rateLimitMiddleware(limiter service.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.Request.Context(), scope, c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
