package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"retail-dashboard/internal/logging"
	"retail-dashboard/internal/model"
	"retail-dashboard/internal/ui"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	BusyLabel       = "Uploading..."
	NoFileMessage   = "Please select a file first."
	fallbackFailure = "Upload failed."
)

var (
	// ErrNoFile is returned when Upload is called without a selected file.
	ErrNoFile = errors.New("no file selected")
	// ErrInFlight is returned when the trigger is already busy with an upload.
	ErrInFlight = errors.New("upload already in progress")
	// ErrRejected is returned when the backend answered but did not accept the file.
	ErrRejected = errors.New("upload rejected")
)

// File is the user's selected inventory file.
type File struct {
	Name    string
	Content []byte
	// ContentType is detected from Content when empty.
	ContentType string
}

// Backend accepts inventory uploads. *data.Client implements it.
type Backend interface {
	UploadInventory(ctx context.Context, filename, contentType string, content io.Reader) (model.UploadOutcome, error)
}

type Options struct {
	DashboardRoute string
	RedirectDelay  time.Duration
	Logger         *zap.Logger
	// OnSuccess runs after an accepted upload, before navigation.
	OnSuccess func()
}

// Controller drives the home page upload form.
type Controller struct {
	backend Backend
	status  ui.StatusSink
	nav     ui.Navigator
	opts    Options
	logger  *zap.Logger
}

func NewController(backend Backend, status ui.StatusSink, nav ui.Navigator, opts Options) *Controller {
	if opts.DashboardRoute == "" {
		opts.DashboardRoute = "/dashboard"
	}
	return &Controller{
		backend: backend,
		status:  status,
		nav:     nav,
		opts:    opts,
		logger:  logging.OrNop(opts.Logger),
	}
}

// acquirer is implemented by triggers that can check and disable atomically.
type acquirer interface {
	TryAcquire(label string) bool
}

// Upload sends file to the backend and reports the outcome on the status
// sink. On success the trigger stays disabled and the navigator is asked to
// move to the dashboard; on any failure the trigger is restored.
func (c *Controller) Upload(ctx context.Context, trigger ui.Trigger, file *File) (model.UploadOutcome, error) {
	if file == nil {
		c.status.Alert(NoFileMessage)
		return model.UploadOutcome{}, ErrNoFile
	}
	if !c.acquire(trigger) {
		return model.UploadOutcome{}, ErrInFlight
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(file.Content).String()
	}

	log := c.logger.With(zap.String("file", file.Name), zap.Int("bytes", len(file.Content)))
	log.Info("uploading inventory", zap.String("content_type", contentType))

	out, err := c.backend.UploadInventory(ctx, file.Name, contentType, bytes.NewReader(file.Content))
	if err != nil {
		log.Error("inventory upload transport failure", zap.Error(err))
		c.status.SetStatus(ui.Status{Kind: ui.StatusError, Text: "❌ Network error: " + err.Error()})
		restore(trigger)
		return model.UploadOutcome{}, err
	}

	if !out.Succeeded() {
		log.Warn("inventory upload rejected",
			zap.Int("status", out.HTTPStatus),
			zap.String("error", out.Error),
			zap.Strings("missing_columns", out.MissingColumns))
		c.status.SetStatus(FailureStatus(out))
		restore(trigger)
		return out, ErrRejected
	}

	log.Info("inventory upload accepted", zap.String("message", out.Message))
	c.status.SetStatus(SuccessStatus(out))
	if c.opts.OnSuccess != nil {
		c.opts.OnSuccess()
	}
	if c.nav != nil {
		c.nav.NavigateAfter(c.opts.DashboardRoute, c.opts.RedirectDelay)
	}
	return out, nil
}

func (c *Controller) acquire(trigger ui.Trigger) bool {
	if trigger == nil {
		return true
	}
	if a, ok := trigger.(acquirer); ok {
		return a.TryAcquire(BusyLabel)
	}
	if trigger.Disabled() {
		return false
	}
	trigger.SetBusy(BusyLabel)
	return true
}

func restore(trigger ui.Trigger) {
	if trigger != nil {
		trigger.Restore()
	}
}

// SuccessStatus formats an accepted upload.
func SuccessStatus(out model.UploadOutcome) ui.Status {
	s := ui.Status{Kind: ui.StatusSuccess, Text: strings.TrimSpace("✅ " + out.Message)}
	if len(out.Warnings) > 0 {
		s.Details = []string{strings.Join(out.Warnings, "\n")}
	}
	return s
}

// FailureStatus formats a rejected upload.
func FailureStatus(out model.UploadOutcome) ui.Status {
	msg := out.Error
	if msg == "" {
		msg = out.Message
	}
	if msg == "" {
		msg = fallbackFailure
	}
	s := ui.Status{Kind: ui.StatusError, Text: "❌ " + msg}
	if len(out.MissingColumns) > 0 {
		s.Details = []string{"Missing columns: " + strings.Join(out.MissingColumns, ", ")}
	}
	return s
}
