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

// Package reporting implements the run_report and run_realtime_report tools.
// Each call validates its arguments into a typed Data API request, makes one
// round trip against the reporting endpoint and renders the rows as a
// markdown table.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
	"github.com/bdmarvin1/mcp-server-ga4/pkg/config"
	"github.com/bdmarvin1/mcp-server-ga4/pkg/ga4"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultLimit = 10

type handlers struct {
	c *config.Config
}

type runReportArgs struct {
	Metrics     []string   `json:"metrics"`
	Dimensions  []string   `json:"dimensions,omitempty"`
	DateRange   *DateRange `json:"date_range"`
	PropertyID  string     `json:"property_id,omitempty"`
	Limit       *int64     `json:"limit,omitempty"`
	AccessToken string     `json:"access_token,omitempty"`
}

type runRealtimeReportArgs struct {
	Metrics     []string `json:"metrics" jsonschema:"Metric names for the realtime report (e.g. 'activeUsers'). Order defines the output column order."`
	Dimensions  []string `json:"dimensions,omitempty" jsonschema:"Dimension names to group by (e.g. 'country', 'city')."`
	PropertyID  string   `json:"property_id,omitempty" jsonschema:"GA4 property ID (e.g. '123456789'). Uses the server default when omitted."`
	Limit       *int64   `json:"limit,omitempty" jsonschema:"Maximum number of rows to return. Defaults to 10."`
	AccessToken string   `json:"access_token,omitempty" jsonschema:"OAuth2 access token to authenticate with instead of the ambient default credentials."`
}

func Install(_ context.Context, s *mcp.Server, c *config.Config) error {
	h := &handlers{
		c: c,
	}

	mcp.AddTool(s, &mcp.Tool{
		Name:        "run_report",
		Description: "Run a standard Google Analytics 4 report with configurable metrics, dimensions and date range.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint: true,
		},
		// date_range is a string-or-object union, which can't be expressed
		// through struct tags alone.
		InputSchema: runReportInputSchema(),
	}, h.runReport)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "run_realtime_report",
		Description: "Get realtime Google Analytics 4 data for the past 30 minutes.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint: true,
		},
	}, h.runRealtimeReport)

	return nil
}

func runReportInputSchema() *jsonschema.Schema {
	isoDateSchema := func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Pattern: `^\d{4}-\d{2}-\d{2}$`}
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"metrics": {
				Type:        "array",
				Description: "Metric names to fetch (e.g. 'activeUsers', 'sessions'). Order defines the output column order.",
				Items:       &jsonschema.Schema{Type: "string"},
			},
			"dimensions": {
				Type:        "array",
				Description: "Dimension names to group by (e.g. 'date', 'country').",
				Items:       &jsonschema.Schema{Type: "string"},
			},
			"date_range": {
				Description: "Date range for the report: one of 'today', 'yesterday', 'last7days', 'last30days', or an object with 'start_date' and 'end_date' in YYYY-MM-DD format.",
				AnyOf: []*jsonschema.Schema{
					{Type: "string", Enum: []any{"today", "yesterday", "last7days", "last30days"}},
					{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"start_date": isoDateSchema(),
							"end_date":   isoDateSchema(),
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
			"property_id": {
				Type:        "string",
				Description: "GA4 property ID (e.g. '123456789'). Uses the server default when omitted.",
			},
			"limit": {
				Type:        "integer",
				Description: "Maximum number of rows to return. Defaults to 10.",
			},
			"access_token": {
				Type:        "string",
				Description: "OAuth2 access token to authenticate with instead of the ambient default credentials.",
			},
		},
		Required: []string{"metrics", "date_range"},
	}
}

func (h *handlers) runReport(ctx context.Context, _ *mcp.CallToolRequest, args *runReportArgs) (*mcp.CallToolResult, any, error) {
	req, err := args.buildRequest(h.c, time.Now())
	if err != nil {
		return nil, nil, err
	}

	client, err := ga4.NewClient(ctx, h.c, args.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	defer client.Close()

	resp, err := client.RunReport(ctx, req)
	if err != nil {
		return nil, nil, ga4.APIError("run_report", req.Property, err)
	}

	table := newReportTable(resp.GetDimensionHeaders(), resp.GetMetricHeaders(), resp.GetRows(), resp.GetTotals())
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: table.Markdown()},
		},
	}, nil, nil
}

func (h *handlers) runRealtimeReport(ctx context.Context, _ *mcp.CallToolRequest, args *runRealtimeReportArgs) (*mcp.CallToolResult, any, error) {
	req, err := args.buildRequest(h.c)
	if err != nil {
		return nil, nil, err
	}

	client, err := ga4.NewClient(ctx, h.c, args.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	defer client.Close()

	resp, err := client.RunRealtimeReport(ctx, req)
	if err != nil {
		return nil, nil, ga4.APIError("run_realtime_report", req.Property, err)
	}

	table := newReportTable(resp.GetDimensionHeaders(), resp.GetMetricHeaders(), resp.GetRows(), resp.GetTotals())
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: table.Markdown()},
		},
	}, nil, nil
}

// buildRequest converts the loosely-typed call arguments into the typed API
// request, rejecting invalid shapes before any network call. The date range
// alias expansion is relative to now.
func (a *runReportArgs) buildRequest(c *config.Config, now time.Time) (*analyticsdatapb.RunReportRequest, error) {
	property, err := ga4.ResolveProperty(a.PropertyID, c)
	if err != nil {
		return nil, err
	}
	metrics, err := metricList(a.Metrics)
	if err != nil {
		return nil, err
	}
	dimensions, err := dimensionList(a.Dimensions)
	if err != nil {
		return nil, err
	}
	dateRange, err := a.DateRange.resolve(now)
	if err != nil {
		return nil, err
	}
	limit, err := resolveLimit(a.Limit)
	if err != nil {
		return nil, err
	}
	return &analyticsdatapb.RunReportRequest{
		Property:   property,
		Metrics:    metrics,
		Dimensions: dimensions,
		DateRanges: []*analyticsdatapb.DateRange{dateRange},
		Limit:      limit,
	}, nil
}

// buildRequest is the realtime variant: no date range, the API implicitly
// reports on the last 30 minutes.
func (a *runRealtimeReportArgs) buildRequest(c *config.Config) (*analyticsdatapb.RunRealtimeReportRequest, error) {
	property, err := ga4.ResolveProperty(a.PropertyID, c)
	if err != nil {
		return nil, err
	}
	metrics, err := metricList(a.Metrics)
	if err != nil {
		return nil, err
	}
	dimensions, err := dimensionList(a.Dimensions)
	if err != nil {
		return nil, err
	}
	limit, err := resolveLimit(a.Limit)
	if err != nil {
		return nil, err
	}
	return &analyticsdatapb.RunRealtimeReportRequest{
		Property:   property,
		Metrics:    metrics,
		Dimensions: dimensions,
		Limit:      limit,
	}, nil
}

func metricList(names []string) ([]*analyticsdatapb.Metric, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one metric must be specified")
	}
	metrics := make([]*analyticsdatapb.Metric, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("metric names must be non-empty strings")
		}
		metrics = append(metrics, &analyticsdatapb.Metric{Name: name})
	}
	return metrics, nil
}

func dimensionList(names []string) ([]*analyticsdatapb.Dimension, error) {
	dimensions := make([]*analyticsdatapb.Dimension, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("dimension names must be non-empty strings")
		}
		dimensions = append(dimensions, &analyticsdatapb.Dimension{Name: name})
	}
	return dimensions, nil
}

func resolveLimit(limit *int64) (int64, error) {
	if limit == nil {
		return defaultLimit, nil
	}
	if *limit <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer, got %d", *limit)
	}
	return *limit, nil
}
