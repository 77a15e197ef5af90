package model

import (
	"errors"
	"fmt"
)

// SimType is a what-if scenario understood by the backend simulator.
// Keep these values stable; they are path segments of the simulator API.
type SimType string

const (
	SimPriceChange     SimType = "price_change"
	SimPromotion       SimType = "promotion"
	SimInventoryChange SimType = "inventory_change"
	SimCompetitorMove  SimType = "competitor_move"
	SimMarketing       SimType = "marketing"
)

// SimTypes lists every scenario in tab order.
var SimTypes = []SimType{
	SimPriceChange,
	SimPromotion,
	SimInventoryChange,
	SimCompetitorMove,
	SimMarketing,
}

var ErrUnknownSimType = errors.New("unknown simulation type")

// simParams maps each type to the query parameters it sends, in form order.
var simParams = map[SimType][]string{
	SimPriceChange:     {"new_price"},
	SimPromotion:       {"discount_pct", "duration_days"},
	SimInventoryChange: {"new_stock_units"},
	SimCompetitorMove:  {"competitor_drop_pct"},
	SimMarketing:       {"ad_spend", "lift_pct"},
}

func ParseSimType(s string) (SimType, error) {
	t := SimType(s)
	if _, ok := simParams[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSimType, s)
	}
	return t, nil
}

// Params returns the parameter names for t. The slice must not be modified.
func (t SimType) Params() []string {
	return simParams[t]
}

func (t SimType) Valid() bool {
	_, ok := simParams[t]
	return ok
}

func (t SimType) String() string { return string(t) }
