package handlers

import (
	"net/http"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardHandler serves the store overview.
type DashboardHandler struct {
	client *data.Client
	logger *zap.Logger
}

func NewDashboardHandler(client *data.Client, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{client: client, logger: logger}
}

type dashboardPage struct {
	Page
	Products []models.ProductSummary
	Insights *models.InsightsResponse
}

// Show handles GET /dashboard. Products and insights load concurrently; a
// missing insights section degrades the page instead of failing it.
func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products    *models.ProductListResponse
		insights    *models.InsightsResponse
		insightsErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		products, err = h.client.ListProducts(ctx)
		return err
	})
	g.Go(func() error {
		insights, insightsErr = h.client.Insights(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		respondBackendError(c, h.logger, "list_products", err)
		return
	}

	page := dashboardPage{
		Page:     Page{Title: "Dashboard"},
		Products: products.Products,
		Insights: insights,
	}
	if insightsErr != nil {
		h.logger.Warn("insights unavailable", zap.Error(insightsErr))
		page.Alerts = append(page.Alerts, "Insights are unavailable right now.")
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"products":    products.Products,
			"total_count": products.TotalCount,
			"insights":    insights,
		})
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", page)
}

// SimulateStore handles GET /api/v1/store/simulate. Every query value other
// than scenario is forwarded to the backend unchanged.
func (h *DashboardHandler) SimulateStore(c *gin.Context) {
	var q models.StoreSimulationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if k != "scenario" && len(v) > 0 {
			params[k] = v[0]
		}
	}
	out, err := h.client.SimulateStore(c.Request.Context(), q.Scenario, params)
	if err != nil {
		h.logger.Error("backend call failed", zap.String("op", "simulate_store"), zap.Error(err))
		status, code, message := backendFailure(err)
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: message,
			},
		})
		return
	}
	c.JSON(http.StatusOK, out)
}
