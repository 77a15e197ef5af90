package model

import (
	"net/http"
	"testing"

	"retail-dashboard/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_ReadsTypeSpecificFields(t *testing.T) {
	fields := Fields{
		"new_price":           "12.99",
		"discount_pct":        "15",
		"duration_days":       "7",
		"new_stock_units":     "300",
		"competitor_drop_pct": "10",
		"ad_spend":            "500",
		"lift_pct":            "12",
	}
	want := map[SimType]map[string]string{
		SimPriceChange:     {"new_price": "12.99"},
		SimPromotion:       {"discount_pct": "15", "duration_days": "7"},
		SimInventoryChange: {"new_stock_units": "300"},
		SimCompetitorMove:  {"competitor_drop_pct": "10"},
		SimMarketing:       {"ad_spend": "500", "lift_pct": "12"},
	}
	for _, st := range SimTypes {
		req, err := NewRequest("Coffee Beans", st, fields)
		require.NoError(t, err, st)
		assert.Equal(t, want[st], req.Params, st)
		assert.Equal(t, "/api/v1/simulator/Coffee%20Beans/"+string(st), req.Path())
	}
}

func TestNewRequest_MissingField(t *testing.T) {
	_, err := NewRequest("Eggs", SimPromotion, Fields{"discount_pct": "10"})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "duration_days")
}

func TestNewRequest_Rejects(t *testing.T) {
	_, err := NewRequest("Eggs", SimType("refund"), Fields{})
	assert.ErrorIs(t, err, ErrUnknownSimType)

	_, err = NewRequest("", SimPriceChange, Fields{"new_price": "1"})
	assert.ErrorIs(t, err, ErrNoProduct)
}

func TestRequestQuery_EncodesValues(t *testing.T) {
	req, err := NewRequest("Milk", SimMarketing, Fields{"ad_spend": "1 000", "lift_pct": "5&6"})
	require.NoError(t, err)
	assert.Equal(t, "ad_spend=1+000&lift_pct=5%266", req.Query())
}

func TestProductFromHeading(t *testing.T) {
	assert.Equal(t, "Organic Honey", ProductFromHeading("📦 Organic Honey", "📦"))
	assert.Equal(t, "Organic Honey", ProductFromHeading("  Organic Honey ", "📦"))
	assert.Equal(t, "A/B Test", ProductFromHeading("📦A/B Test", "📦"))
	assert.Equal(t, "📦 Eggs", ProductFromHeading("📦 Eggs", ""))
}

func TestTabs_MapToSimTypes(t *testing.T) {
	seen := map[SimType]bool{}
	for _, tab := range Tabs {
		st := tab.SimType()
		require.True(t, st.Valid(), tab)
		seen[st] = true
		back, ok := TabFor(st)
		require.True(t, ok)
		assert.Equal(t, tab, back)
	}
	assert.Len(t, seen, len(SimTypes))

	_, err := ParseTab("inventory")
	assert.Error(t, err)
	tab, err := ParseTab("stock")
	require.NoError(t, err)
	assert.Equal(t, SimInventoryChange, tab.SimType())
}

func TestDecodeResult(t *testing.T) {
	res, err := DecodeResult(SimPromotion, []byte(`{"revenue_impact":-40,"is_profitable":false,"lift_pct":8,"recommendation":"avoid"}`))
	require.NoError(t, err)
	promo, ok := res.(PromotionResult)
	require.True(t, ok)
	assert.Equal(t, -40.0, promo.RevenueImpact)
	assert.False(t, promo.IsProfitable)
	assert.Equal(t, "avoid", promo.Recommendation())
	assert.Equal(t, SimPromotion, res.Type())

	_, err = DecodeResult(SimMarketing, []byte(`<html>`))
	assert.Error(t, err)
}

func TestUploadOutcome_Succeeded(t *testing.T) {
	ok := UploadOutcome{UploadResponse: models.UploadResponse{Status: "success"}, HTTPStatus: http.StatusOK}
	assert.True(t, ok.Succeeded())

	badStatus := UploadOutcome{UploadResponse: models.UploadResponse{Status: "success"}, HTTPStatus: http.StatusBadRequest}
	assert.False(t, badStatus.Succeeded())

	logical := UploadOutcome{UploadResponse: models.UploadResponse{Status: "error"}, HTTPStatus: http.StatusOK}
	assert.False(t, logical.Succeeded())
}

func TestFormValues(t *testing.T) {
	form := FormValues{"new_price": {"2.49", "9"}, "empty": {""}, "none": {}}

	v, ok := form.Field("new_price")
	assert.True(t, ok)
	assert.Equal(t, "2.49", v)

	v, ok = form.Field("empty")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = form.Field("none")
	assert.False(t, ok)
	_, ok = form.Field("missing")
	assert.False(t, ok)

	req, err := NewRequest("Eggs", SimPriceChange, form)
	require.NoError(t, err)
	assert.Equal(t, "new_price=2.49", req.Query())
}
