package router

import (
	"log"
	"net/http"
	"time"

	"payrail/config"
	"payrail/internal/handler"
	"payrail/internal/middleware"
	"payrail/internal/repository"
	"payrail/internal/service"
	"payrail/pkg/paystack"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	paymentRepo := repository.NewPaymentRepository(db)

	var gateway paystack.Gateway
	if cfg.Paystack.SecretKey != "" {
		gateway = paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey)
	} else {
		log.Printf("[PAYSTACK] no secret key configured, using stub gateway")
		gateway = paystack.NewStubGateway()
	}

	paymentSvc := service.NewPaymentService(paymentRepo, gateway)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/payments", paymentHandler.Create)
		api.GET("/payments/:id", paymentHandler.Get)
	}

	return r
}
