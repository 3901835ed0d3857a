package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase"
	mock_usecase "github.com/seribro/escrow-service/internal/usecase/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestQueryHandler_GetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("foreign payment maps to 403", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIQueryUseCase(ctrl)
		h := NewQueryHandler(uc, zap.NewNop())

		student := entities.Actor{ID: "stud-2", Role: entities.RoleStudent}
		r := gin.New()
		r.GET("/v1/payments/:payment_id", actorInjector(student), h.GetPayment)

		uc.EXPECT().GetPayment(gomock.Any(), "pay-1", student).Return(entities.Payment{}, usecase.ErrAccessDenied)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/pay-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("unknown payment maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIQueryUseCase(ctrl)
		h := NewQueryHandler(uc, zap.NewNop())

		r := gin.New()
		r.GET("/v1/payments/:payment_id", actorInjector(admin), h.GetPayment)

		uc.EXPECT().GetPayment(gomock.Any(), "missing", admin).Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestQueryHandler_PendingReleases(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mock_usecase.NewMockIQueryUseCase(ctrl)
	h := NewQueryHandler(uc, zap.NewNop())

	r := gin.New()
	r.GET("/v1/payments/admin/pending-releases", actorInjector(admin), h.PendingReleases)

	uc.EXPECT().PendingReleases(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, q usecase.PendingReleaseQuery) (usecase.PendingReleasePage, error) {
			if q.Page != 2 || q.Limit != 10 || q.Search != "proj" || q.SortBy != "amount" {
				t.Fatalf("query params not decoded: %+v", q)
			}
			if q.From == nil || !q.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("from not decoded: %v", q.From)
			}
			return usecase.PendingReleasePage{Payments: []entities.Payment{}, Total: 0, Page: q.Page, Limit: q.Limit}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/v1/payments/admin/pending-releases?page=2&limit=10&search=proj&sort_by=amount&from=2026-03-01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestQueryHandler_Summaries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("company summary uses the authenticated company", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIQueryUseCase(ctrl)
		h := NewQueryHandler(uc, zap.NewNop())

		company := entities.Actor{ID: "comp-1", Role: entities.RoleCompany}
		r := gin.New()
		r.GET("/v1/payments/company/summary", actorInjector(company), h.CompanySummary)

		uc.EXPECT().CompanySummary(gomock.Any(), "comp-1").Return(entities.CompanySummary{CompanyID: "comp-1"}, nil)

		// A company cannot read another company's summary via the query param.
		req := httptest.NewRequest(http.MethodGet, "/v1/payments/company/summary?company_id=comp-9", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("admin may target any student", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mock_usecase.NewMockIQueryUseCase(ctrl)
		h := NewQueryHandler(uc, zap.NewNop())

		r := gin.New()
		r.GET("/v1/payments/student/earnings", actorInjector(admin), h.StudentEarnings)

		uc.EXPECT().StudentEarnings(gomock.Any(), "stud-7").Return(entities.StudentEarnings{StudentID: "stud-7"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/student/earnings?student_id=stud-7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
