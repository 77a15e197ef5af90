package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/data"
	"retail-dashboard/internal/model"
	"retail-dashboard/internal/render"
	"retail-dashboard/internal/simulator"
	"retail-dashboard/internal/ui"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	runLabel            = "Run Simulation"
	supersededNotice    = "A newer simulation replaced this one."
	analysisUnavailable = "Analysis is unavailable right now."
)

// resultView is the result area of one product page. It keeps only the
// latest panel and alert.
type resultView struct {
	mu    sync.Mutex
	panel *render.Panel
	alert string
}

func (v *resultView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = nil
	v.alert = ""
}

func (v *resultView) Show(p render.Panel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = &p
}

func (v *resultView) Alert(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alert = msg
}

func (v *resultView) snapshot() (*render.Panel, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panel, v.alert
}

// session is the simulator state of one open product page, keyed by the page
// id carried in its tab links and form.
type session struct {
	product  string
	analysis *models.ProductAnalysisResponse
	ctrl     *simulator.Controller
	view     *resultView
	lastUsed time.Time
}

const (
	defaultMaxSessions = 1024
	defaultSessionTTL  = 30 * time.Minute
)

// ProductHandler serves product pages and their simulator tabs.
type ProductHandler struct {
	client *data.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	now         func() time.Time
	maxSessions int

	mu       sync.Mutex
	sessions map[string]*session
}

func NewProductHandler(client *data.Client, headingPrefix string, sessionTTL time.Duration, logger *zap.Logger) *ProductHandler {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &ProductHandler{
		client:      client,
		logger:      logger,
		prefix:      headingPrefix,
		ttl:         sessionTTL,
		now:         time.Now,
		maxSessions: defaultMaxSessions,
		sessions:    make(map[string]*session),
	}
}

func (h *ProductHandler) newSession(product string, analysis *models.ProductAnalysisResponse) *session {
	view := &resultView{}
	return &session{
		product:  product,
		analysis: analysis,
		ctrl: simulator.NewController(h.client, view, simulator.Options{
			HeadingPrefix: h.prefix,
			Logger:        h.logger,
		}),
		view: view,
	}
}

// lookup returns the live session of page, if it belongs to product.
func (h *ProductHandler) lookup(page, product string) (*session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	h.expireLocked(now)
	s, ok := h.sessions[page]
	if !ok || s.product != product {
		return nil, false
	}
	s.lastUsed = now
	return s, true
}

// store keeps s under page, evicting the least recently used page when full.
func (h *ProductHandler) store(page string, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	h.expireLocked(now)
	if _, ok := h.sessions[page]; !ok && len(h.sessions) >= h.maxSessions {
		var oldest string
		for id, other := range h.sessions {
			if oldest == "" || other.lastUsed.Before(h.sessions[oldest].lastUsed) {
				oldest = id
			}
		}
		delete(h.sessions, oldest)
	}
	s.lastUsed = now
	h.sessions[page] = s
}

func (h *ProductHandler) expireLocked(now time.Time) {
	for id, s := range h.sessions {
		if now.Sub(s.lastUsed) > h.ttl {
			delete(h.sessions, id)
		}
	}
}

// open resolves the session for a request. Unknown products get a 404 and
// no state. When the backend cannot confirm the product the page still
// works, but its state is not kept.
func (h *ProductHandler) open(c *gin.Context, page, product string) (*session, bool) {
	if s, ok := h.lookup(page, product); ok {
		return s, true
	}
	analysis, err := h.client.AnalyzeProduct(c.Request.Context(), product)
	if err != nil {
		if data.IsNotFound(err) || errors.Is(err, model.ErrNoProduct) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product '"+product+"' not found")
			return nil, false
		}
		h.logger.Warn("product analysis unavailable", zap.String("product", product), zap.Error(err))
		return h.newSession(product, nil), true
	}
	s := h.newSession(product, analysis)
	h.store(page, s)
	return s, true
}

// pageID returns the client's page id, or a fresh one when it is absent or
// malformed.
func pageID(raw string) string {
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

type fieldState struct {
	Name  string
	Value string
}

type productPage struct {
	Page
	Name     string
	Path     string
	PageID   string
	Heading  string
	Analysis *models.ProductAnalysisResponse
	Tabs     []ui.TabState
	Type     model.SimType
	Fields   []fieldState
	Button   *ui.Button
	Panel    *render.Panel
}

func (h *ProductHandler) heading(product string) string {
	return strings.TrimSpace(h.prefix + " " + product)
}

func (h *ProductHandler) page(s *session, id string, values model.FieldReader) productPage {
	active := s.ctrl.Panels().Active()
	p := productPage{
		Page:     Page{Title: s.product},
		Name:     s.product,
		Path:     url.PathEscape(s.product),
		PageID:   id,
		Heading:  h.heading(s.product),
		Analysis: s.analysis,
		Tabs:     s.ctrl.Panels().States(),
		Type:     active.SimType(),
		Button:   ui.NewButton(runLabel),
	}
	if s.analysis == nil {
		p.Alerts = append(p.Alerts, analysisUnavailable)
	}
	for _, name := range p.Type.Params() {
		v, _ := values.Field(name)
		p.Fields = append(p.Fields, fieldState{Name: name, Value: v})
	}
	if s.ctrl.Panels().HasResult() {
		p.Panel, _ = s.view.snapshot()
	}
	return p
}

// Show handles GET /product/:name. Every load starts a new page.
func (h *ProductHandler) Show(c *gin.Context) {
	product := strings.TrimSpace(c.Param("name"))
	id := uuid.NewString()
	s, ok := h.open(c, id, product)
	if !ok {
		return
	}

	p := h.page(s, id, model.Fields{})
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"product": product, "page": id, "analysis": s.analysis, "tabs": p.Tabs})
		return
	}
	c.HTML(http.StatusOK, "product.html", p)
}

// SwitchTab handles GET /product/:name/tab/:tab?page=<id>.
func (h *ProductHandler) SwitchTab(c *gin.Context) {
	product := strings.TrimSpace(c.Param("name"))
	tab, err := model.ParseTab(c.Param("tab"))
	if err != nil {
		respondError(c, http.StatusNotFound, "UNKNOWN_TAB", err.Error())
		return
	}

	id := pageID(c.Query("page"))
	s, ok := h.open(c, id, product)
	if !ok {
		return
	}
	if err := s.ctrl.SwitchTab(tab); err != nil {
		respondError(c, http.StatusBadRequest, "UNKNOWN_TAB", err.Error())
		return
	}
	p := h.page(s, id, model.Fields{})
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"product": product, "page": id, "tabs": p.Tabs})
		return
	}
	c.HTML(http.StatusOK, "product.html", p)
}

// Simulate handles POST /product/:name/simulate/:type.
func (h *ProductHandler) Simulate(c *gin.Context) {
	product := strings.TrimSpace(c.Param("name"))
	st, err := model.ParseSimType(c.Param("type"))
	if err != nil {
		respondError(c, http.StatusNotFound, "UNKNOWN_SIMULATION", err.Error())
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	fields := model.FormValues(c.Request.PostForm)
	heading := c.Request.PostForm.Get("heading")
	if heading == "" {
		heading = h.heading(product)
	}

	id := pageID(c.Request.PostForm.Get("page"))
	s, ok := h.open(c, id, product)
	if !ok {
		return
	}
	if tab, ok := model.TabFor(st); ok && s.ctrl.Panels().Active() != tab {
		if err := s.ctrl.SwitchTab(tab); err != nil {
			respondError(c, http.StatusBadRequest, "UNKNOWN_TAB", err.Error())
			return
		}
	}

	runErr := s.ctrl.Run(c.Request.Context(), ui.NewButton(runLabel), heading, st, fields)
	status, code := simulateStatus(runErr)

	p := h.page(s, id, fields)
	switch {
	case runErr == nil:
	case errors.Is(runErr, simulator.ErrStale):
		p.Panel = nil
		p.Alerts = append(p.Alerts, supersededNotice)
	default:
		p.Panel = nil
		if _, alert := s.view.snapshot(); alert != "" {
			p.Alerts = append(p.Alerts, alert)
		}
	}

	if wantsJSON(c) {
		if runErr != nil {
			msg := simulator.AlertMessage
			if code == "SUPERSEDED" {
				msg = supersededNotice
			}
			c.JSON(status, models.ErrorResponse{Error: models.ErrorDetail{Code: code, Message: msg}})
			return
		}
		c.JSON(http.StatusOK, p.Panel)
		return
	}
	c.HTML(status, "product.html", p)
}

func simulateStatus(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, simulator.ErrStale):
		return http.StatusConflict, "SUPERSEDED"
	case errors.Is(err, model.ErrMissingField), errors.Is(err, model.ErrNoProduct):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case data.IsNotFound(err):
		return http.StatusNotFound, "NOT_FOUND"
	default:
		return http.StatusBadGateway, "SIMULATION_FAILED"
	}
}
