package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Page holds the fields shared by every HTML page.
type Page struct {
	Title string
	// Refresh is the content of a meta refresh tag, e.g. "1.5;url=/dashboard".
	Refresh string
	Alerts  []string
}

type errorPage struct {
	Page
	Message string
}

func refreshContent(route string, delay time.Duration) string {
	return strconv.FormatFloat(delay.Seconds(), 'f', -1, 64) + ";url=" + route
}

// wantsJSON reports whether the client prefers JSON over HTML.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// respondError writes the error envelope as JSON or as the error page.
func respondError(c *gin.Context, status int, code, message string) {
	if wantsJSON(c) {
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: message,
			},
		})
		return
	}
	c.HTML(status, "error.html", errorPage{
		Page:    Page{Title: http.StatusText(status)},
		Message: message,
	})
}

// respondBackendError logs a failed backend call and answers for it.
func respondBackendError(c *gin.Context, logger *zap.Logger, op string, err error) {
	logger.Error("backend call failed", zap.String("op", op), zap.Error(err))
	_ = c.Error(err)
	status, code, message := backendFailure(err)
	respondError(c, status, code, message)
}

// backendFailure maps a failed backend call onto the dashboard's own status:
// unknown products stay 404, everything else is a bad gateway.
func backendFailure(err error) (int, string, string) {
	var be *data.BackendError
	if errors.As(err, &be) {
		if be.StatusCode == http.StatusNotFound {
			return http.StatusNotFound, be.Code, be.Message
		}
		return http.StatusBadGateway, be.Code, be.Message
	}
	return http.StatusBadGateway, "BACKEND_UNREACHABLE", "The analytics backend is not reachable."
}
