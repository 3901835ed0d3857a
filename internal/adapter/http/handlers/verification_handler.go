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

// SignatureHeader carries the gateway HMAC on webhook deliveries.
const SignatureHeader = "X-Razorpay-Signature"

var errInvalidCapturePayload = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid capture payload", http.StatusBadRequest)

// VerificationHandler handles capture confirmations: the synchronous client
// callback after checkout and the asynchronous gateway webhook.

type VerificationHandler struct {
	usecase usecase.IVerificationUseCase
	logger  *zap.Logger
}

func NewVerificationHandler(uc usecase.IVerificationUseCase, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{usecase: uc, logger: logger}
}

func (h *VerificationHandler) VerifyCapture(c *gin.Context) {
	var payload request.VerifyCaptureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCapturePayload.HTTPStatus, errInvalidCapturePayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.VerifyCapture(c.Request.Context(), usecase.CaptureConfirmation{
		GatewayOrderRef:   payload.GatewayOrderRef,
		GatewayPaymentRef: payload.GatewayPaymentRef,
		GatewaySignature:  payload.GatewaySignature,
		ProjectID:         payload.ProjectID,
	})
	if err != nil {
		middleware.RecordTransition(string(entities.EventCapture), "rejected")
		h.logger.Warn("capture verification failed",
			zap.String("gateway_order_ref", payload.GatewayOrderRef),
			zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	middleware.RecordTransition(string(entities.EventCapture), "committed")
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// Webhook is unauthenticated at the transport level; trust comes entirely from
// the HMAC over the raw body.
func (h *VerificationHandler) Webhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(errInvalidCapturePayload.HTTPStatus, errInvalidCapturePayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.VerifyWebhook(c.Request.Context(), raw, c.GetHeader(SignatureHeader))
	if err != nil {
		middleware.RecordTransition(string(entities.EventCapture), "rejected")
		h.logger.Warn("webhook rejected", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	middleware.RecordTransition(string(entities.EventCapture), "committed")
	c.JSON(http.StatusOK, response.FromPayment(payment))
}
