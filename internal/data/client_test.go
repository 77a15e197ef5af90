package data

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil)
}

func TestSimulate_BuildsPathAndQuery(t *testing.T) {
	var gotPath, gotQuery, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, `{"revenue_impact":-40,"is_profitable":false,"lift_pct":8,"recommendation":"avoid"}`)
	})

	req, err := model.NewRequest("Fresh Milk", model.SimPromotion, model.Fields{"discount_pct": "20", "duration_days": "7"})
	require.NoError(t, err)
	res, err := c.Simulate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/simulator/Fresh%20Milk/promotion", gotPath)
	assert.Equal(t, "discount_pct=20&duration_days=7", gotQuery)
	assert.NotEmpty(t, gotReqID)
	promo, ok := res.(model.PromotionResult)
	require.True(t, ok)
	assert.Equal(t, 8.0, promo.LiftPct)
}

func TestSimulate_BackendErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Product 'Ghost' not found"}`)
	})
	req, err := model.NewRequest("Ghost", model.SimPriceChange, model.Fields{"new_price": "3"})
	require.NoError(t, err)

	_, err = c.Simulate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Product 'Ghost' not found", err.Error())
}

func TestSimulate_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})
	req, err := model.NewRequest("Eggs", model.SimMarketing, model.Fields{"ad_spend": "1", "lift_pct": "2"})
	require.NoError(t, err)
	_, err = c.Simulate(context.Background(), req)
	assert.Error(t, err)
}

func TestNewBackendError_Shapes(t *testing.T) {
	e := newBackendError(500, []byte(`{"error":"Internal server error","detail":"An error occurred"}`))
	assert.Equal(t, "An error occurred", e.Message)
	assert.Equal(t, "BACKEND_ERROR", e.Code)

	e = newBackendError(400, []byte(`{"error":"CSV is missing required columns: price"}`))
	assert.Equal(t, "CSV is missing required columns: price", e.Message)

	e = newBackendError(422, []byte(`{"detail":[{"loc":["query","ad_spend"],"msg":"field required"}]}`))
	assert.Contains(t, e.Message, "field required")
	assert.Equal(t, "VALIDATION_ERROR", e.Code)

	e = newBackendError(502, []byte(`<html>bad gateway</html>`))
	assert.Equal(t, "backend returned status 502", e.Message)
}

func TestUploadInventory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload_inventory", r.URL.Path)
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "inventory.csv", hdr.Filename)
		assert.Equal(t, "text/csv", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "product,price,inventory\n", string(body))
		_ = json.NewEncoder(w).Encode(models.UploadResponse{Status: "success", Message: "Imported 120 rows", Warnings: []string{"2 rows skipped"}})
	})

	out, err := c.UploadInventory(context.Background(), "inventory.csv", "text/csv", strings.NewReader("product,price,inventory\n"))
	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.Equal(t, []string{"2 rows skipped"}, out.Warnings)
}

func TestUploadInventory_ErrorBodyIsOutcome(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"status":"error","error":"Invalid format","missing_columns":["sku","price"]}`)
	})
	out, err := c.UploadInventory(context.Background(), "x.csv", "", strings.NewReader("a"))
	require.NoError(t, err)
	assert.False(t, out.Succeeded())
	assert.Equal(t, http.StatusBadRequest, out.HTTPStatus)
	assert.Equal(t, []string{"sku", "price"}, out.MissingColumns)
}

func TestUploadInventory_NonJSONErrorPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>bad gateway</html>`)
	})
	_, err := c.UploadInventory(context.Background(), "x.csv", "", strings.NewReader("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestUploadInventory_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.UploadInventory(context.Background(), "x.csv", "", strings.NewReader("a"))
	assert.Error(t, err)
}

func TestListProducts_UsesCache(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `{"products":[{"product_name":"Eggs","risk_level":"STABLE"}],"total_count":1}`)
	})
	c.Cache = NewResponseCache(time.Minute)

	for i := 0; i < 3; i++ {
		list, err := c.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, list.TotalCount)
	}
	assert.Equal(t, int32(1), hits.Load())

	c.Cache.Clear()
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCopilotQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.CopilotQueryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Which products are at risk?", req.Query)
		_ = json.NewEncoder(w).Encode(models.CopilotResponse{Query: req.Query, Response: "**Eggs** is at risk", Intent: "inventory"})
	})
	out, err := c.CopilotQuery(context.Background(), "Which products are at risk?")
	require.NoError(t, err)
	assert.Equal(t, "inventory", out.Intent)
}

func TestSimulateStore(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/simulator/all", r.URL.Path)
		assert.Equal(t, "promotion", r.URL.Query().Get("scenario"))
		assert.Equal(t, "10", r.URL.Query().Get("discount_pct"))
		_, _ = io.WriteString(w, `{"products_impacted":50,"summary":{"total_revenue_change":-120.5,"revenue_change_pct":-2.1,"demand_change_pct":8,"action":"NEGATIVE"}}`)
	})
	out, err := c.SimulateStore(context.Background(), "promotion", map[string]string{"discount_pct": "10", "scenario": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, 50, out.ProductsImpacted)
	assert.Equal(t, "NEGATIVE", out.Summary.Action)
	assert.Nil(t, out.Summary.NetProfitImpact)
}

func TestResponseCache_Expiry(t *testing.T) {
	assert.Nil(t, NewResponseCache(0))

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewResponseCache(time.Minute)
	c.now = func() time.Time { return now }
	c.Set("a", []byte("1"))
	_, ok := c.Get("a")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	c.Set("b", []byte("2"))
	assert.Equal(t, 1, c.Len())

	var nilCache *ResponseCache
	nilCache.Set("x", nil)
	_, ok = nilCache.Get("x")
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "products.json")
	snap := NewProductSnapshot("http://localhost:8000", &models.ProductListResponse{
		Products: []models.ProductSummary{{ProductName: "Eggs", CurrentPrice: 3.5}},
	})
	require.NoError(t, SaveSnapshot(snap, path))
	got, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Products, got.Products)
	assert.Equal(t, "http://localhost:8000", got.Backend)
}
