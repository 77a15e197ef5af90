package model

import "fmt"

// Tab identifies a simulator panel by a stable id rather than its label.
type Tab string

const (
	TabPrice      Tab = "price"
	TabPromo      Tab = "promo"
	TabStock      Tab = "stock"
	TabCompetitor Tab = "competitor"
	TabMarketing  Tab = "marketing"
)

type tabInfo struct {
	sim   SimType
	label string
}

var tabs = map[Tab]tabInfo{
	TabPrice:      {SimPriceChange, "Price"},
	TabPromo:      {SimPromotion, "Promotion"},
	TabStock:      {SimInventoryChange, "Inventory"},
	TabCompetitor: {SimCompetitorMove, "Competitor"},
	TabMarketing:  {SimMarketing, "Ads & Marketing"},
}

// Tabs lists every tab in display order.
var Tabs = []Tab{TabPrice, TabPromo, TabStock, TabCompetitor, TabMarketing}

func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if _, ok := tabs[t]; !ok {
		return "", fmt.Errorf("unknown tab %q", s)
	}
	return t, nil
}

func (t Tab) SimType() SimType { return tabs[t].sim }

func (t Tab) Label() string { return tabs[t].label }

func (t Tab) Valid() bool {
	_, ok := tabs[t]
	return ok
}

// TabFor returns the tab that hosts simulation type s.
func TabFor(s SimType) (Tab, bool) {
	for _, t := range Tabs {
		if tabs[t].sim == s {
			return t, true
		}
	}
	return "", false
}
