package handlers

import (
	"net/http"

	request "github.com/seribro/escrow-service/internal/adapter/http/dto/request"
	response "github.com/seribro/escrow-service/internal/adapter/http/dto/response"
	"github.com/seribro/escrow-service/internal/adapter/http/middleware"
	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase"
	"github.com/seribro/escrow-service/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidReleasePayload = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid release payload", http.StatusBadRequest)
	errInvalidRefundPayload  = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid refund payload", http.StatusBadRequest)
	errEmptyBulkBatch        = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "payment_ids must not be empty", http.StatusBadRequest)
)

// ReleaseHandler handles the admin settlement operations.

type ReleaseHandler struct {
	usecase usecase.IReleaseUseCase
	logger  *zap.Logger
}

func NewReleaseHandler(uc usecase.IReleaseUseCase, logger *zap.Logger) *ReleaseHandler {
	return &ReleaseHandler{usecase: uc, logger: logger}
}

func (h *ReleaseHandler) Release(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.ReleaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil && c.Request.ContentLength > 0 {
		c.JSON(errInvalidReleasePayload.HTTPStatus, errInvalidReleasePayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.Release(c.Request.Context(), c.Param("payment_id"), actor, entities.ReleaseMethod(payload.Method))
	if err != nil {
		middleware.RecordTransition(string(entities.EventRelease), "rejected")
		h.logger.Warn("release failed",
			zap.String("payment_id", c.Param("payment_id")),
			zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	middleware.RecordTransition(string(entities.EventRelease), "committed")
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

func (h *ReleaseHandler) Refund(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.RefundRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRefundPayload.HTTPStatus, errInvalidRefundPayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.Refund(c.Request.Context(), c.Param("payment_id"), actor, payload.Reason)
	if err != nil {
		middleware.RecordTransition(string(entities.EventRefund), "rejected")
		h.logger.Warn("refund failed",
			zap.String("payment_id", c.Param("payment_id")),
			zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	middleware.RecordTransition(string(entities.EventRefund), "committed")
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// BulkRelease always answers 200: per-id outcomes are in the body, so partial
// failure is not an HTTP failure.
func (h *ReleaseHandler) BulkRelease(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.BulkReleaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidReleasePayload.HTTPStatus, errInvalidReleasePayload.ToHTTPError())
		return
	}
	ids := payload.CleanIDs()
	if len(ids) == 0 {
		c.JSON(errEmptyBulkBatch.HTTPStatus, errEmptyBulkBatch.ToHTTPError())
		return
	}

	result := h.usecase.BulkRelease(c.Request.Context(), ids, actor, entities.ReleaseMethod(payload.Method))
	c.JSON(http.StatusOK, response.FromBulkReleaseResult(result))
}
