// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporting

import (
	"strings"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
)

// reportTable is an independent view of a report response: column names in
// request order (dimensions before metrics) and one value mapping per row.
// The API response is never mutated. Both report variants share the same row
// shape, so one table type covers run_report and run_realtime_report.
type reportTable struct {
	dimensions []string
	metrics    []string
	rows       []map[string]string
	totals     []map[string]string
}

func newReportTable(dimensionHeaders []*analyticsdatapb.DimensionHeader, metricHeaders []*analyticsdatapb.MetricHeader, rows, totals []*analyticsdatapb.Row) *reportTable {
	t := &reportTable{}
	for _, h := range dimensionHeaders {
		t.dimensions = append(t.dimensions, h.GetName())
	}
	for _, h := range metricHeaders {
		t.metrics = append(t.metrics, h.GetName())
	}
	for _, row := range rows {
		m := make(map[string]string, len(t.dimensions)+len(t.metrics))
		for i, v := range row.GetDimensionValues() {
			if i < len(t.dimensions) {
				m[t.dimensions[i]] = v.GetValue()
			}
		}
		for i, v := range row.GetMetricValues() {
			if i < len(t.metrics) {
				m[t.metrics[i]] = v.GetValue()
			}
		}
		t.rows = append(t.rows, m)
	}
	// Totals rows carry metric values only.
	for _, row := range totals {
		m := make(map[string]string, len(t.metrics))
		for i, v := range row.GetMetricValues() {
			if i < len(t.metrics) {
				m[t.metrics[i]] = v.GetValue()
			}
		}
		if len(m) > 0 {
			t.totals = append(t.totals, m)
		}
	}
	return t
}

// columns returns the output column order: dimensions first, then metrics,
// both in the order the request named them.
func (t *reportTable) columns() []string {
	cols := make([]string, 0, len(t.dimensions)+len(t.metrics))
	cols = append(cols, t.dimensions...)
	cols = append(cols, t.metrics...)
	return cols
}

// Markdown renders the table for the calling agent.
func (t *reportTable) Markdown() string {
	if len(t.rows) == 0 {
		return "No data returned."
	}

	cols := t.columns()
	header := "| " + strings.Join(cols, " | ") + " |"
	separator := "| " + strings.Join(repeat("---", len(cols)), " | ") + " |"

	lines := []string{header, separator}
	for _, row := range t.rows {
		values := make([]string, 0, len(cols))
		for _, col := range cols {
			values = append(values, row[col])
		}
		lines = append(lines, "| "+strings.Join(values, " | ")+" |")
	}

	if len(t.totals) > 0 {
		lines = append(lines, "", "**Totals:**", header, separator)
		for _, total := range t.totals {
			values := make([]string, 0, len(cols))
			for _, col := range cols {
				// Dimension cells stay empty on totals rows.
				if isDimension(t.dimensions, col) {
					values = append(values, "")
					continue
				}
				values = append(values, total[col])
			}
			lines = append(lines, "| "+strings.Join(values, " | ")+" |")
		}
	}

	return strings.Join(lines, "\n")
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func isDimension(dimensions []string, col string) bool {
	for _, d := range dimensions {
		if d == col {
			return true
		}
	}
	return false
}
