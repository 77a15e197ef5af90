package model

import (
	"encoding/json"
	"fmt"

	"retail-dashboard/internal/api/models"
)

// Result is a decoded simulator response. The concrete type matches Type().
type Result interface {
	Type() SimType
	Recommendation() string
}

type PriceResult struct{ models.PriceChangeResponse }

type PromotionResult struct{ models.PromotionResponse }

type InventoryResult struct{ models.InventoryChangeResponse }

type CompetitorResult struct{ models.CompetitorMoveResponse }

type MarketingResult struct{ models.MarketingResponse }

func (PriceResult) Type() SimType      { return SimPriceChange }
func (PromotionResult) Type() SimType  { return SimPromotion }
func (InventoryResult) Type() SimType  { return SimInventoryChange }
func (CompetitorResult) Type() SimType { return SimCompetitorMove }
func (MarketingResult) Type() SimType  { return SimMarketing }

func (r PriceResult) Recommendation() string      { return r.PriceChangeResponse.Recommendation }
func (r PromotionResult) Recommendation() string  { return r.PromotionResponse.Recommendation }
func (r InventoryResult) Recommendation() string  { return r.InventoryChangeResponse.Recommendation }
func (r CompetitorResult) Recommendation() string { return r.CompetitorMoveResponse.Recommendation }
func (r MarketingResult) Recommendation() string  { return r.MarketingResponse.Recommendation }

// DecodeResult parses a simulator response body for type t.
func DecodeResult(t SimType, body []byte) (Result, error) {
	var (
		res    Result
		target any
	)
	switch t {
	case SimPriceChange:
		r := &PriceResult{}
		res, target = r, &r.PriceChangeResponse
	case SimPromotion:
		r := &PromotionResult{}
		res, target = r, &r.PromotionResponse
	case SimInventoryChange:
		r := &InventoryResult{}
		res, target = r, &r.InventoryChangeResponse
	case SimCompetitorMove:
		r := &CompetitorResult{}
		res, target = r, &r.CompetitorMoveResponse
	case SimMarketing:
		r := &MarketingResult{}
		res, target = r, &r.MarketingResponse
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSimType, string(t))
	}
	if err := json.Unmarshal(body, target); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", t, err)
	}
	return deref(res), nil
}

// deref hands out value types so callers can type-switch on PriceResult etc.
func deref(r Result) Result {
	switch v := r.(type) {
	case *PriceResult:
		return *v
	case *PromotionResult:
		return *v
	case *InventoryResult:
		return *v
	case *CompetitorResult:
		return *v
	case *MarketingResult:
		return *v
	}
	return r
}
