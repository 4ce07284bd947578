// README: HTTP router registration.
package http

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agriadvisor/internal/http/handlers"
	"agriadvisor/internal/http/middleware"
	"agriadvisor/internal/modules/history"
	"agriadvisor/internal/service"
)

type RouterConfig struct {
	AllowOrigins []string
	PerMinute    int
	Burst        int
}

func NewRouter(advisor *service.Advisor, hist *history.Service, cfg RouterConfig, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log), corsMiddleware(cfg.AllowOrigins))

	health := handlers.NewHealthHandler(advisor, hist)
	r.GET("/", health.Root)
	r.GET("/health", health.Health)

	limited := r.Group("/", middleware.NewRateLimiter(cfg.PerMinute, cfg.Burst).Middleware(log))
	chat := handlers.NewChatHandler(advisor)
	limited.POST("/chat", chat.Chat)
	predict := handlers.NewPredictHandler(advisor)
	limited.POST("/predict", predict.Predict)

	api := r.Group("/api")
	api.GET("/crops", predict.Crops)
	historyHandler := handlers.NewHistoryHandler(hist)
	api.GET("/history/topics", historyHandler.Topics)
	api.GET("/history/recent", historyHandler.Recent)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
