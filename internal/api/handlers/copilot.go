package handlers

import (
	"net/http"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CopilotHandler serves the natural-language assistant page.
type CopilotHandler struct {
	client *data.Client
	logger *zap.Logger
}

func NewCopilotHandler(client *data.Client, logger *zap.Logger) *CopilotHandler {
	return &CopilotHandler{client: client, logger: logger}
}

type copilotPage struct {
	Page
	Query       string
	Suggestions []string
	Answer      *models.CopilotResponse
}

func (h *CopilotHandler) newPage(c *gin.Context) copilotPage {
	p := copilotPage{Page: Page{Title: "Copilot"}}
	sugg, err := h.client.CopilotSuggestions(c.Request.Context())
	if err != nil {
		h.logger.Warn("copilot suggestions unavailable", zap.Error(err))
		return p
	}
	p.Suggestions = sugg.Suggestions
	return p
}

// Show handles GET /copilot.
func (h *CopilotHandler) Show(c *gin.Context) {
	c.HTML(http.StatusOK, "copilot.html", h.newPage(c))
}

// Ask handles POST /copilot.
func (h *CopilotHandler) Ask(c *gin.Context) {
	var form models.CopilotForm
	if err := c.ShouldBind(&form); err != nil {
		if wantsJSON(c) {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		p := h.newPage(c)
		p.Query = form.Query
		p.Alerts = append(p.Alerts, "Please enter a question between 3 and 500 characters.")
		c.HTML(http.StatusBadRequest, "copilot.html", p)
		return
	}

	answer, err := h.client.CopilotQuery(c.Request.Context(), form.Query)
	if err != nil {
		respondBackendError(c, h.logger, "copilot_query", err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, answer)
		return
	}
	p := h.newPage(c)
	p.Query = form.Query
	p.Answer = answer
	c.HTML(http.StatusOK, "copilot.html", p)
}
