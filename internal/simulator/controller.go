package simulator

import (
	"context"
	"errors"
	"sync"

	"retail-dashboard/internal/logging"
	"retail-dashboard/internal/model"
	"retail-dashboard/internal/render"
	"retail-dashboard/internal/ui"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	BusyLabel    = "Simulating..."
	AlertMessage = "Simulation failed. Please try again."
)

// ErrStale is returned by Run when a newer run (or a tab switch) superseded
// it before its response arrived. Nothing was rendered for it.
var ErrStale = errors.New("simulation superseded by a newer request")

// Backend runs simulator requests. *data.Client implements it.
type Backend interface {
	Simulate(ctx context.Context, req model.Request) (model.Result, error)
}

// Options configures a Controller.
type Options struct {
	// HeadingPrefix is the marker in front of the product heading.
	HeadingPrefix string
	Logger        *zap.Logger
}

// Controller drives the simulator tabs and the shared result area.
//
// Every Run takes an in-flight token. Starting a new run or switching tabs
// invalidates the previous token and cancels its request, so only the most
// recent trigger can write to the result area.
type Controller struct {
	backend Backend
	sink    ui.ResultSink
	panels  *ui.Panels
	prefix  string
	logger  *zap.Logger

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
}

func NewController(backend Backend, sink ui.ResultSink, opts Options) *Controller {
	return &Controller{
		backend: backend,
		sink:    sink,
		panels:  ui.NewPanels(),
		prefix:  opts.HeadingPrefix,
		logger:  logging.OrNop(opts.Logger),
	}
}

func (c *Controller) Panels() *ui.Panels { return c.panels }

// SwitchTab shows tab's panel, clears the result area and drops any pending run.
func (c *Controller) SwitchTab(tab model.Tab) error {
	if err := c.panels.SwitchTab(tab); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
	c.sink.Reset()
	return nil
}

// Run executes one simulation of type t for the product named in heading,
// reading parameters from fields. trigger may be nil.
func (c *Controller) Run(ctx context.Context, trigger ui.Trigger, heading string, t model.SimType, fields model.FieldReader) error {
	product := model.ProductFromHeading(heading, c.prefix)
	req, err := model.NewRequest(product, t, fields)
	if err != nil {
		c.logger.Error("simulation request invalid",
			zap.String("product", product),
			zap.String("type", string(t)),
			zap.Error(err))
		c.sink.Alert(AlertMessage)
		return err
	}

	if trigger != nil {
		trigger.SetBusy(BusyLabel)
		defer trigger.Restore()
	}

	ctx, token := c.begin(ctx)
	defer c.finish(token)

	res, err := c.backend.Simulate(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.token {
		c.logger.Debug("dropping stale simulation",
			zap.String("product", product),
			zap.String("type", string(t)))
		return ErrStale
	}
	if err != nil {
		c.logger.Error("simulation failed",
			zap.String("product", product),
			zap.String("type", string(t)),
			zap.Error(err))
		c.sink.Alert(AlertMessage)
		return err
	}
	c.sink.Reset()
	c.sink.Show(render.Render(res))
	c.panels.MarkResult()
	return nil
}

func (c *Controller) begin(parent context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	return ctx, c.token
}

// finish releases the run's context if it is still the current one.
func (c *Controller) finish(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == c.token && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) invalidateLocked() {
	c.token++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// RunAll runs every simulation type for one product concurrently. Each type
// renders into its own row; the shared result area is not touched.
func (c *Controller) RunAll(ctx context.Context, heading string, fields model.FieldReader) []render.Row {
	product := model.ProductFromHeading(heading, c.prefix)
	rows := make([]render.Row, len(model.SimTypes))

	var g errgroup.Group
	for i, t := range model.SimTypes {
		i, t := i, t
		g.Go(func() error {
			rows[i] = c.runOne(ctx, product, t, fields)
			return nil
		})
	}
	// Failures are recorded per row; the group only joins.
	g.Wait()
	return rows
}

func (c *Controller) runOne(ctx context.Context, product string, t model.SimType, fields model.FieldReader) render.Row {
	row := render.Row{Product: product, Panel: render.Panel{Type: t}}
	req, err := model.NewRequest(product, t, fields)
	if err != nil {
		row.Err = err.Error()
		return row
	}
	res, err := c.backend.Simulate(ctx, req)
	if err != nil {
		c.logger.Warn("batch simulation failed",
			zap.String("product", product),
			zap.String("type", string(t)),
			zap.Error(err))
		row.Err = err.Error()
		return row
	}
	row.Panel = render.Render(res)
	return row
}
