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
	"testing"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
	"github.com/google/go-cmp/cmp"
)

func dimensionValue(v string) *analyticsdatapb.DimensionValue {
	return &analyticsdatapb.DimensionValue{
		OneValue: &analyticsdatapb.DimensionValue_Value{Value: v},
	}
}

func metricValue(v string) *analyticsdatapb.MetricValue {
	return &analyticsdatapb.MetricValue{
		OneValue: &analyticsdatapb.MetricValue_Value{Value: v},
	}
}

func dimensionHeaders(names ...string) []*analyticsdatapb.DimensionHeader {
	headers := make([]*analyticsdatapb.DimensionHeader, 0, len(names))
	for _, n := range names {
		headers = append(headers, &analyticsdatapb.DimensionHeader{Name: n})
	}
	return headers
}

func metricHeaders(names ...string) []*analyticsdatapb.MetricHeader {
	headers := make([]*analyticsdatapb.MetricHeader, 0, len(names))
	for _, n := range names {
		headers = append(headers, &analyticsdatapb.MetricHeader{Name: n})
	}
	return headers
}

func TestReportTableColumnOrder(t *testing.T) {
	table := newReportTable(
		dimensionHeaders("country", "city"),
		metricHeaders("activeUsers", "sessions"),
		nil, nil,
	)
	want := []string{"country", "city", "activeUsers", "sessions"}
	if diff := cmp.Diff(want, table.columns()); diff != "" {
		t.Errorf("columns() mismatch (-want +got):\n%s", diff)
	}
}

func TestReportTableMarkdown(t *testing.T) {
	table := newReportTable(
		dimensionHeaders("country"),
		metricHeaders("activeUsers"),
		[]*analyticsdatapb.Row{
			{
				DimensionValues: []*analyticsdatapb.DimensionValue{dimensionValue("US")},
				MetricValues:    []*analyticsdatapb.MetricValue{metricValue("120")},
			},
			{
				DimensionValues: []*analyticsdatapb.DimensionValue{dimensionValue("DE")},
				MetricValues:    []*analyticsdatapb.MetricValue{metricValue("45")},
			},
		},
		nil,
	)

	want := strings.Join([]string{
		"| country | activeUsers |",
		"| --- | --- |",
		"| US | 120 |",
		"| DE | 45 |",
	}, "\n")

	if got := table.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

func TestReportTableMarkdownWithTotals(t *testing.T) {
	table := newReportTable(
		dimensionHeaders("country"),
		metricHeaders("activeUsers"),
		[]*analyticsdatapb.Row{
			{
				DimensionValues: []*analyticsdatapb.DimensionValue{dimensionValue("US")},
				MetricValues:    []*analyticsdatapb.MetricValue{metricValue("120")},
			},
		},
		[]*analyticsdatapb.Row{
			{
				MetricValues: []*analyticsdatapb.MetricValue{metricValue("165")},
			},
		},
	)

	want := strings.Join([]string{
		"| country | activeUsers |",
		"| --- | --- |",
		"| US | 120 |",
		"",
		"**Totals:**",
		"| country | activeUsers |",
		"| --- | --- |",
		"|  | 165 |",
	}, "\n")

	if got := table.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

func TestReportTableMarkdownEmpty(t *testing.T) {
	table := newReportTable(dimensionHeaders("country"), metricHeaders("activeUsers"), nil, nil)
	if got := table.Markdown(); got != "No data returned." {
		t.Errorf("Markdown() = %q, want %q", got, "No data returned.")
	}
}

// Metric-only reports produce single-column rows keyed by the metric name.
func TestReportTableNoDimensions(t *testing.T) {
	table := newReportTable(
		nil,
		metricHeaders("activeUsers"),
		[]*analyticsdatapb.Row{
			{MetricValues: []*analyticsdatapb.MetricValue{metricValue("321")}},
		},
		nil,
	)

	want := strings.Join([]string{
		"| activeUsers |",
		"| --- |",
		"| 321 |",
	}, "\n")

	if got := table.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}

	if diff := cmp.Diff([]map[string]string{{"activeUsers": "321"}}, table.rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}
