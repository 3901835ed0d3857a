package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 5 * time.Second

// HTTPProjectDirectory resolves projects against the marketplace API
// (PROJECTS_API_URL). A 404 is a zero-value result, not an error, matching
// the store convention.

type HTTPProjectDirectory struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

var _ interfaces.IProjectDirectory = (*HTTPProjectDirectory)(nil)

func NewHTTPProjectDirectory(baseURL string, logger *zap.Logger) *HTTPProjectDirectory {
	return &HTTPProjectDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultRequestTimeout},
		logger:  logger,
	}
}

func (d *HTTPProjectDirectory) GetProject(ctx context.Context, projectID string) (entities.ProjectRef, error) {
	url := d.baseURL + "/internal/projects/" + projectID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entities.ProjectRef{}, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return entities.ProjectRef{}, fmt.Errorf("project directory request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return entities.ProjectRef{}, nil
	default:
		d.logger.Warn("project directory answered unexpectedly",
			zap.String("project_id", projectID),
			zap.Int("status", resp.StatusCode))
		return entities.ProjectRef{}, fmt.Errorf("project directory answered %d", resp.StatusCode)
	}

	var payload struct {
		ID            string `json:"id"`
		CompanyID     string `json:"company_id"`
		StudentID     string `json:"student_id"`
		BudgetAmount  int64  `json:"budget_amount"`
		Currency      string `json:"currency"`
		Status        string `json:"status"`
		PaymentLinked bool   `json:"payment_linked"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entities.ProjectRef{}, fmt.Errorf("project directory decode: %w", err)
	}

	return entities.ProjectRef{
		ID:            payload.ID,
		CompanyID:     payload.CompanyID,
		StudentID:     payload.StudentID,
		BudgetAmount:  payload.BudgetAmount,
		Currency:      payload.Currency,
		Status:        payload.Status,
		PaymentLinked: payload.PaymentLinked,
	}, nil
}
