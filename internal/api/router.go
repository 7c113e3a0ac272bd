// SPDX-License-Identifier: EPL-2.0

package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ik5/wavtomp3/internal/tracing"
	"go.uber.org/zap"
)

type RouterConfig struct {
	// AllowedOrigins is "*" or a comma separated origin list.
	AllowedOrigins string
	Tracing        bool
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Tracing {
		router.Use(tracing.Middleware(nil))
	}
	router.Use(accessLog(h.log))

	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins == "" || cfg.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, o)
			}
		}
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	corsConfig.ExposeHeaders = []string{"X-Job-ID", "X-Input-Format", "X-Compression-Ratio"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", h.Health)

	v1 := router.Group("/v1")
	{
		v1.GET("/formats", h.Formats)
		v1.POST("/convert", h.Convert)
	}

	return router
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if id := c.GetString(jobIDKey); id != "" {
			fields = append(fields, zap.String("job_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Error(c.Errors.Last()))
			log.Error("request failed", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
