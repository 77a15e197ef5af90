package api

import (
	"net/http"
	"strings"

	"retail-dashboard/internal/api/handlers"
	"retail-dashboard/internal/api/middleware"
	"retail-dashboard/internal/api/templates"
	"retail-dashboard/internal/config"
	"retail-dashboard/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every dashboard route onto a gin engine.
func NewRouter(cfg *config.Config, client *data.Client, logger *zap.Logger) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	// Match on the escaped path so "A%2FB" stays one :name segment.
	router.UseRawPath = true
	router.SetHTMLTemplate(tmpl)

	// Apply middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(client, cfg.UI, logger)
	dashboardHandler := handlers.NewDashboardHandler(client, logger)
	productHandler := handlers.NewProductHandler(client, cfg.UI.HeadingPrefix, cfg.UI.SessionTTL, logger)
	copilotHandler := handlers.NewCopilotHandler(client, logger)

	router.GET("/health", handlers.Health(client, logger))

	// Pages
	router.GET("/", uploadHandler.Home)
	router.POST("/upload", uploadHandler.Upload)
	router.GET(cfg.UI.DashboardRoute, dashboardHandler.Show)
	router.GET("/product/:name", productHandler.Show)
	router.GET("/product/:name/tab/:tab", productHandler.SwitchTab)
	router.POST("/product/:name/simulate/:type", productHandler.Simulate)
	router.GET("/copilot", copilotHandler.Show)
	router.POST("/copilot", copilotHandler.Ask)

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/store/simulate", dashboardHandler.SimulateStore)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"Title":   "Not Found",
			"Message": "This page does not exist.",
		})
	})

	return router, nil
}
