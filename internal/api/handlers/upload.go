package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/config"
	"retail-dashboard/internal/data"
	"retail-dashboard/internal/ui"
	"retail-dashboard/internal/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const uploadLabel = "Upload"

// UploadHandler serves the home page and its inventory upload form.
type UploadHandler struct {
	client *data.Client
	ui     config.UIConfig
	logger *zap.Logger
}

func NewUploadHandler(client *data.Client, uiCfg config.UIConfig, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{client: client, ui: uiCfg, logger: logger}
}

type homePage struct {
	Page
	Button *ui.Button
	Status *ui.Status
}

// Home handles GET /.
func (h *UploadHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", homePage{
		Page:   Page{Title: "Upload inventory"},
		Button: ui.NewButton(uploadLabel),
	})
}

// Upload handles POST /upload.
func (h *UploadHandler) Upload(c *gin.Context) {
	var form models.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	file, err := h.readFile(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
		return
	}

	route := h.ui.DashboardRoute
	if form.Redirect != "" && !strings.HasPrefix(form.Redirect, "//") {
		route = form.Redirect
	}

	rec := &ui.Recorder{}
	btn := ui.NewButton(uploadLabel)
	ctrl := upload.NewController(h.client, rec, rec, upload.Options{
		DashboardRoute: route,
		RedirectDelay:  h.ui.RedirectDelay,
		Logger:         h.logger,
		OnSuccess:      h.client.Cache.Clear,
	})
	out, err := ctrl.Upload(c.Request.Context(), btn, file)
	got := rec.Snapshot()

	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, upload.ErrNoFile):
		status = http.StatusBadRequest
	case errors.Is(err, upload.ErrRejected):
		status = http.StatusUnprocessableEntity
		if out.HTTPStatus >= 400 && out.HTTPStatus < 500 {
			status = out.HTTPStatus
		}
	default:
		status = http.StatusBadGateway
	}

	if wantsJSON(c) {
		switch {
		case errors.Is(err, upload.ErrNoFile):
			respondError(c, status, "NO_FILE", upload.NoFileMessage)
		case err != nil && !errors.Is(err, upload.ErrRejected):
			respondError(c, status, "BACKEND_UNREACHABLE", got.Status.Text)
		default:
			c.JSON(status, gin.H{"result": out.UploadResponse, "redirect": got.Route})
		}
		return
	}

	page := homePage{
		Page:   Page{Title: "Upload inventory", Alerts: got.Alerts},
		Button: btn,
		Status: got.Status,
	}
	if got.Route != "" {
		page.Refresh = refreshContent(got.Route, got.RouteDelay)
	}
	c.HTML(status, "home.html", page)
}

// readFile returns nil when the form carries no file part.
func (h *UploadHandler) readFile(c *gin.Context) (*upload.File, error) {
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return openPart(fh)
}

func openPart(fh *multipart.FileHeader) (*upload.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "application/octet-stream" {
		ct = ""
	}
	return &upload.File{Name: fh.Filename, Content: content, ContentType: ct}, nil
}
