package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	response "github.com/seribro/escrow-service/internal/adapter/http/dto/response"
	"github.com/seribro/escrow-service/internal/adapter/http/middleware"
	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueryHandler serves the read-only payment and reporting views.

type QueryHandler struct {
	usecase usecase.IQueryUseCase
	logger  *zap.Logger
}

func NewQueryHandler(uc usecase.IQueryUseCase, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{usecase: uc, logger: logger}
}

func (h *QueryHandler) GetPayment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	payment, err := h.usecase.GetPayment(c.Request.Context(), c.Param("payment_id"), actor)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// PendingReleases lists captured payments awaiting release, with paging,
// date-window and text filters for the admin console.
func (h *QueryHandler) PendingReleases(c *gin.Context) {
	q := usecase.PendingReleaseQuery{
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 0),
		Search: c.Query("search"),
		SortBy: c.Query("sort_by"),
	}
	if from, ok := dateQuery(c, "from"); ok {
		q.From = &from
	}
	if to, ok := dateQuery(c, "to"); ok {
		q.To = &to
	}

	page, err := h.usecase.PendingReleases(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("pending releases listing failed", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPendingReleasePage(page))
}

// CompanySummary answers for the authenticated company; administrators may
// pass an explicit company_id.
func (h *QueryHandler) CompanySummary(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	companyID := actor.ID
	if actor.Role == entities.RoleAdmin {
		if v := strings.TrimSpace(c.Query("company_id")); v != "" {
			companyID = v
		}
	}

	summary, err := h.usecase.CompanySummary(c.Request.Context(), companyID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCompanySummary(summary))
}

func (h *QueryHandler) StudentEarnings(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	studentID := actor.ID
	if actor.Role == entities.RoleAdmin {
		if v := strings.TrimSpace(c.Query("student_id")); v != "" {
			studentID = v
		}
	}

	earnings, err := h.usecase.StudentEarnings(c.Request.Context(), studentID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromStudentEarnings(earnings))
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func dateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
