package handler

import (
	"errors"
	"net/http"

	"payrail/internal/service"
	"payrail/pkg/paystack"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Create initializes a checkout session with the gateway and records the
// payment. Nothing is persisted when the gateway call fails.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req struct {
		Name   string  `json:"name" binding:"required"`
		Email  string  `json:"email" binding:"required,email"`
		Amount float64 `json:"amount" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, payURL, err := h.svc.Create(c.Request.Context(), service.PaymentDraft{
		Name:   req.Name,
		Email:  req.Email,
		Amount: req.Amount,
	})
	if err != nil {
		var gwErr *paystack.GatewayError
		if errors.As(err, &gwErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to initialize payment with gateway",
				"details": gwErr.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"payment_url": payURL,
		"message":     "Payment created successfully",
		"details":     p,
	})
}

// Get returns a payment, reconciling its state against the gateway first if
// it is still pending.
func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.svc.Retrieve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		var gwErr *paystack.GatewayError
		if errors.As(err, &gwErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment verification failed: " + gwErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"details": p,
		"message": "Payment details retrieved successfully",
	})
}
