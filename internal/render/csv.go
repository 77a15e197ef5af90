package render

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// Row is one exported simulation: the product, the panel, or the error text
// when the run failed.
type Row struct {
	Product string
	Panel   Panel
	Err     string
}

var csvHeader = []string{
	"product",
	"type",
	"revenue",
	"revenue_tone",
	"demand",
	"recommendation",
	"metrics",
	"error",
}

func WriteResultsCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeResultsCSV(f, rows); err != nil {
		return err
	}
	return f.Close()
}

func EncodeResultsCSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Product,
			string(r.Panel.Type),
			r.Panel.Revenue.Text,
			string(r.Panel.Revenue.Tone),
			r.Panel.Demand,
			r.Panel.Recommendation,
			fmtMetrics(r.Panel.Metrics),
			r.Err,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtMetrics(ms []Metric) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, m.Label+"="+m.Value)
	}
	return strings.Join(parts, "; ")
}
