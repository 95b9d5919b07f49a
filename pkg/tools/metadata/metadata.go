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

// Package metadata implements the get_metadata tool, which lists the metrics
// and dimensions available on a GA4 property.
package metadata

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
	"github.com/bdmarvin1/mcp-server-ga4/pkg/config"
	"github.com/bdmarvin1/mcp-server-ga4/pkg/ga4"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	typeAll        = "all"
	typeMetrics    = "metrics"
	typeDimensions = "dimensions"
)

type handlers struct {
	c *config.Config
}

type getMetadataArgs struct {
	Type        string `json:"type,omitempty" jsonschema:"Type of metadata to retrieve: 'metrics', 'dimensions' or 'all'. Defaults to 'all'."`
	PropertyID  string `json:"property_id,omitempty" jsonschema:"GA4 property ID (e.g. '123456789'). Uses the server default when omitted."`
	AccessToken string `json:"access_token,omitempty" jsonschema:"OAuth2 access token to authenticate with instead of the ambient default credentials."`
}

func Install(_ context.Context, s *mcp.Server, c *config.Config) error {
	h := &handlers{
		c: c,
	}

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_metadata",
		Description: "Retrieve the metrics and dimensions available for a Google Analytics 4 property, including custom definitions.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint: true,
		},
	}, h.getMetadata)

	return nil
}

func (h *handlers) getMetadata(ctx context.Context, _ *mcp.CallToolRequest, args *getMetadataArgs) (*mcp.CallToolResult, any, error) {
	selector, err := metadataType(args.Type)
	if err != nil {
		return nil, nil, err
	}
	property, err := ga4.ResolveProperty(args.PropertyID, h.c)
	if err != nil {
		return nil, nil, err
	}

	client, err := ga4.NewClient(ctx, h.c, args.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	defer client.Close()

	resp, err := client.GetMetadata(ctx, &analyticsdatapb.GetMetadataRequest{
		Name: property + "/metadata",
	})
	if err != nil {
		return nil, nil, ga4.APIError("get_metadata", property, err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: formatCatalog(resp, selector)},
		},
	}, nil, nil
}

func metadataType(t string) (string, error) {
	switch t {
	case "":
		return typeAll, nil
	case typeAll, typeMetrics, typeDimensions:
		return t, nil
	default:
		return "", fmt.Errorf("invalid metadata type %q: valid types are %s, %s, %s", t, typeMetrics, typeDimensions, typeAll)
	}
}

// formatCatalog renders the metric/dimension catalog grouped by kind,
// filtered by the requested type selector.
func formatCatalog(md *analyticsdatapb.Metadata, selector string) string {
	var lines []string

	if selector == typeAll || selector == typeMetrics {
		lines = append(lines, "# Available Metrics", "")
		for _, m := range md.GetMetrics() {
			lines = append(lines, descriptorLines(m.GetApiName(), m.GetUiName(), m.GetDescription(), m.GetCategory())...)
		}
	}

	if selector == typeAll || selector == typeDimensions {
		lines = append(lines, "# Available Dimensions", "")
		for _, d := range md.GetDimensions() {
			lines = append(lines, descriptorLines(d.GetApiName(), d.GetUiName(), d.GetDescription(), d.GetCategory())...)
		}
	}

	return strings.Join(lines, "\n")
}

func descriptorLines(apiName, uiName, description, category string) []string {
	lines := []string{fmt.Sprintf("- **%s**: %s", apiName, uiName)}
	if description != "" {
		lines = append(lines, "  - "+description)
	}
	lines = append(lines, "  - Category: "+category, "")
	return lines
}
