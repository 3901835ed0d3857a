package handlers

import (
	"net/http"

	request "github.com/seribro/escrow-service/internal/adapter/http/dto/request"
	response "github.com/seribro/escrow-service/internal/adapter/http/dto/response"
	"github.com/seribro/escrow-service/internal/adapter/http/middleware"
	"github.com/seribro/escrow-service/internal/usecase"
	"github.com/seribro/escrow-service/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidOrderPayload = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid order payload", http.StatusBadRequest)

// OrderHandler handles payment order creation for company checkouts.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
	logger  *zap.Logger
}

func NewOrderHandler(uc usecase.IOrderUseCase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{usecase: uc, logger: logger}
}

// CreateOrder opens an escrow payment order for a project. Repeating the call
// while the order is still open returns the same order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.CreateOrder(c.Request.Context(), payload.ProjectID, actor)
	if err != nil {
		h.logger.Warn("create order failed",
			zap.String("project_id", payload.ProjectID),
			zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	c.JSON(status, response.FromOrderResult(result))
}
