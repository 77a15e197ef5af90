package render

import (
	"bytes"
	"encoding/csv"
	"testing"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		res  model.Result
		want Panel
	}{
		{
			name: "favorable price change",
			res: model.PriceResult{PriceChangeResponse: models.PriceChangeResponse{
				RevenueChangePct: 12.5, DemandChangePct: -3.0, Recommendation: "favorable",
			}},
			want: Panel{
				Type:           model.SimPriceChange,
				Revenue:        Field{Text: "+12.5%", Tone: ToneGood},
				Demand:         "-3%",
				Recommendation: "favorable",
			},
		},
		{
			name: "unprofitable promotion",
			res: model.PromotionResult{PromotionResponse: models.PromotionResponse{
				RevenueImpact: -40, IsProfitable: false, LiftPct: 8, Recommendation: "avoid",
			}},
			want: Panel{
				Type:           model.SimPromotion,
				Revenue:        Field{Text: "-$40", Tone: ToneBad},
				Demand:         "+8% (Lift)",
				Recommendation: "avoid",
			},
		},
		{
			name: "more stock costs more to hold",
			res: model.InventoryResult{InventoryChangeResponse: models.InventoryChangeResponse{
				HoldingCostChange: 120, StockoutRiskReduction: 15, Recommendation: "INCREASE",
			}},
			want: Panel{
				Type:           model.SimInventoryChange,
				Revenue:        Field{Text: "+$120", Tone: ToneBad},
				Demand:         "15% (Stockout Risk ↓)",
				Recommendation: "INCREASE",
				Metrics: []Metric{
					{Label: "Holding Cost Change", Value: "+$120"},
					{Label: "Stockout Risk Reduction", Value: "15%"},
				},
			},
		},
		{
			name: "less stock saves holding cost",
			res: model.InventoryResult{InventoryChangeResponse: models.InventoryChangeResponse{
				HoldingCostChange: -60.25, StockoutRiskReduction: -4, Recommendation: "DECREASE",
			}},
			want: Panel{
				Type:           model.SimInventoryChange,
				Revenue:        Field{Text: "-$60.25", Tone: ToneGood},
				Demand:         "-4% (Stockout Risk ↓)",
				Recommendation: "DECREASE",
				Metrics: []Metric{
					{Label: "Holding Cost Change", Value: "-$60.25"},
					{Label: "Stockout Risk Reduction", Value: "-4%"},
				},
			},
		},
		{
			name: "competitor move is always adverse",
			res: model.CompetitorResult{CompetitorMoveResponse: models.CompetitorMoveResponse{
				RevenueImpactPct: 0, DemandImpactPct: -6, Recommendation: "MONITOR",
			}},
			want: Panel{
				Type:           model.SimCompetitorMove,
				Revenue:        Field{Text: "0%", Tone: ToneBad},
				Demand:         "-6%",
				Recommendation: "MONITOR",
			},
		},
		{
			name: "marketing campaign",
			res: model.MarketingResult{MarketingResponse: models.MarketingResponse{
				DailyRevenueIncrease: 35, TrafficLiftPct: 10, BreakEvenDays: 4.3, Recommendation: "RUN_CAMPAIGN",
			}},
			want: Panel{
				Type:           model.SimMarketing,
				Revenue:        Field{Text: "+$35/day", Tone: ToneGood},
				Demand:         "+10% (Traffic)",
				Recommendation: "RUN_CAMPAIGN",
				Metrics:        []Metric{{Label: "Break-even", Value: "4.3 days"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Render(tt.res)); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "+12.5%", SignedPct(12.5))
	assert.Equal(t, "0%", SignedPct(0))
	assert.Equal(t, "-0.1%", SignedPct(-0.1))
	assert.Equal(t, "$0", SignedUSD(0))
	assert.Equal(t, "+$1234.5", SignedUSD(1234.5))
	assert.Equal(t, "7", Number(7.0))
}

func TestEncodeResultsCSV(t *testing.T) {
	rows := []Row{
		{Product: "Eggs", Panel: Render(model.MarketingResult{MarketingResponse: models.MarketingResponse{
			DailyRevenueIncrease: 35, TrafficLiftPct: 10, BreakEvenDays: 4, Recommendation: "RUN_CAMPAIGN",
		}})},
		{Product: "Eggs", Panel: Panel{Type: model.SimPromotion}, Err: "simulation failed"},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeResultsCSV(&buf, rows))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, csvHeader, recs[0])
	assert.Equal(t, []string{"Eggs", "marketing", "+$35/day", "good", "+10% (Traffic)", "RUN_CAMPAIGN", "Break-even=4 days", ""}, recs[1])
	assert.Equal(t, "simulation failed", recs[2][7])
}
