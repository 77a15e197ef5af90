package render

import (
	"retail-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// Tone is the colour class of a rendered value.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneBad     Tone = "bad"
	ToneNeutral Tone = "neutral"
)

// Field is a value plus its colour class.
type Field struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Metric is one line of the extra metrics block.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Panel is everything the result area shows for one simulation.
type Panel struct {
	Type           model.SimType `json:"type"`
	Revenue        Field         `json:"revenue"`
	Demand         string        `json:"demand"`
	Recommendation string        `json:"recommendation"`
	// Metrics is only set for inventory and marketing results.
	Metrics []Metric `json:"metrics,omitempty"`
}

// Render projects a simulator result into display text.
func Render(res model.Result) Panel {
	p := Panel{Type: res.Type(), Recommendation: res.Recommendation()}
	switch r := res.(type) {
	case model.PriceResult:
		p.Revenue = Field{Text: SignedPct(r.RevenueChangePct), Tone: goodWhenPositive(r.RevenueChangePct)}
		p.Demand = SignedPct(r.DemandChangePct)
	case model.PromotionResult:
		p.Revenue = Field{Text: SignedUSD(r.RevenueImpact), Tone: goodWhenPositive(r.RevenueImpact)}
		p.Demand = SignedPct(r.LiftPct) + " (Lift)"
	case model.InventoryResult:
		// Holding cost is a cost: growth is bad.
		p.Revenue = Field{Text: SignedUSD(r.HoldingCostChange), Tone: goodWhenPositive(-r.HoldingCostChange)}
		p.Demand = Number(r.StockoutRiskReduction) + "% (Stockout Risk ↓)"
		p.Metrics = []Metric{
			{Label: "Holding Cost Change", Value: SignedUSD(r.HoldingCostChange)},
			{Label: "Stockout Risk Reduction", Value: Number(r.StockoutRiskReduction) + "%"},
		}
	case model.CompetitorResult:
		// A competitor undercutting us is adverse whatever the figure.
		p.Revenue = Field{Text: SignedPct(r.RevenueImpactPct), Tone: ToneBad}
		p.Demand = SignedPct(r.DemandImpactPct)
	case model.MarketingResult:
		p.Revenue = Field{Text: SignedUSD(r.DailyRevenueIncrease) + "/day", Tone: goodWhenPositive(r.DailyRevenueIncrease)}
		p.Demand = SignedPct(r.TrafficLiftPct) + " (Traffic)"
		p.Metrics = []Metric{
			{Label: "Break-even", Value: Number(r.BreakEvenDays) + " days"},
		}
	}
	return p
}

func goodWhenPositive(v float64) Tone {
	switch {
	case v > 0:
		return ToneGood
	case v < 0:
		return ToneBad
	default:
		return ToneNeutral
	}
}

// Number prints v in its shortest decimal form: 12.5, -3, 40.
func Number(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// SignedPct prints +12.5%, -3%, 0%.
func SignedPct(v float64) string {
	s := Number(v)
	if v > 0 {
		s = "+" + s
	}
	return s + "%"
}

// SignedUSD prints +$40, -$40, $0.
func SignedUSD(v float64) string {
	abs := decimal.NewFromFloat(v).Abs().String()
	switch {
	case v > 0:
		return "+$" + abs
	case v < 0:
		return "-$" + abs
	default:
		return "$" + abs
	}
}
