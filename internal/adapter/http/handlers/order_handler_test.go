package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seribro/escrow-service/internal/adapter/http/middleware"
	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase"
	mock_usecase "github.com/seribro/escrow-service/internal/usecase/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func actorInjector(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	}
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	company := entities.Actor{ID: "comp-1", Role: entities.RoleCompany}

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/payments/create-order", actorInjector(company), h.CreateOrder)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-order", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/payments/create-order", h.CreateOrder)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-order", bytes.NewBufferString(`{"project_id":"proj-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("conflict when the project already has a settled escrow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/payments/create-order", actorInjector(company), h.CreateOrder)

		uc.EXPECT().CreateOrder(gomock.Any(), "proj-1", company).Return(usecase.OrderResult{}, usecase.ErrOpenEscrowExists)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-order", bytes.NewBufferString(`{"project_id":"proj-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("directory outage maps to 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/payments/create-order", actorInjector(company), h.CreateOrder)

		uc.EXPECT().CreateOrder(gomock.Any(), "proj-1", company).Return(usecase.OrderResult{}, usecase.ErrUpstreamUnavailable)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-order", bytes.NewBufferString(`{"project_id":"proj-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/payments/create-order", actorInjector(company), h.CreateOrder)

		uc.EXPECT().CreateOrder(gomock.Any(), "proj-1", company).Return(usecase.OrderResult{
			Payment: entities.Payment{
				ID:              "pay-1",
				ProjectID:       "proj-1",
				GatewayOrderRef: "order_abc",
				GatewayStatus:   entities.GatewayStatusLinked,
				State:           entities.PaymentStateCreated,
			},
			GatewayKeyID:  "rzp_test_key",
			GatewayLinked: true,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-order", bytes.NewBufferString(`{"project_id":"proj-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["gateway_order_ref"] != "order_abc" || body["gateway_linked"] != true {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("reused order answers 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/payments/create-order", actorInjector(company), h.CreateOrder)

		uc.EXPECT().CreateOrder(gomock.Any(), "proj-1", company).Return(usecase.OrderResult{
			Payment: entities.Payment{ID: "pay-1", State: entities.PaymentStateCreated},
			Reused:  true,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-order", bytes.NewBufferString(`{"project_id":"proj-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
