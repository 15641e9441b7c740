package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"chat-service/api"
	"chat-service/common/middleware"
	"chat-service/config"
	"chat-service/factory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var zLog *zap.Logger
var f factory.Factory

func NewGinServer(business *api.ChatService) *gin.Engine {
	router := gin.New()
	// the error handler goes first so its c.Next() wraps every later stage
	router.Use(middleware.ErrorHandler(business.F.Logger()))
	router.Use(business.F.Trace().EnsureTracingGin)
	router.Use(business.F.Trace().LogIncomingRequestGin)
	router.Use(business.F.Limiter().RateLimitHandlerGin)

	router.GET("/health", business.GetHealth)
	router.POST("/users", business.PostUser)
	router.GET("/users/:id", business.GetUser)

	authorized := router.Group("/")
	authorized.Use(business.F.Auth().JwtAuthorizationHandlerGin)
	authorized.POST("/messages", business.PostMessage)
	authorized.GET("/messages", business.GetMessages)
	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	f = factory.NewFactory(cfg)
	zLog = f.Logger()
	zLog.Info("Server is starting...")

	// Create an instance of handler
	service := api.NewChatService(f)
	s := NewGinServer(service)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: s,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zLog.Fatal("Error while starting server", zap.Any("error", err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	select {
	case <-c:
		zLog.Info("SIGINT signal received...")
		zLog.Info("Gracefully shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zLog.Fatal("Server forced to shutdown: ", zap.Any("error", err))
		}
	}

	zLog.Info("Main thread is terminating...")
	_ = zLog.Sync()
}
