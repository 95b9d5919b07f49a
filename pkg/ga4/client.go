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

// Package ga4 holds the pieces of the Analytics Data API integration shared
// by every tool: client construction with per-call credential selection,
// property resource naming, and API error classification.
package ga4

import (
	"context"
	"fmt"
	"strings"

	analyticsdata "cloud.google.com/go/analytics/data/apiv1beta"
	"github.com/bdmarvin1/mcp-server-ga4/pkg/config"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// NewClient builds a Data API client for a single tool call. When
// accessToken is non-empty the client authenticates with that token;
// otherwise it falls back to Application Default Credentials. A supplied
// token always wins over ambient credentials. No network call is made here;
// credentials are first exercised by the API call that follows.
func NewClient(ctx context.Context, c *config.Config, accessToken string) (*analyticsdata.BetaAnalyticsDataClient, error) {
	client, err := analyticsdata.NewBetaAnalyticsDataClient(ctx, clientOptions(c, accessToken)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Analytics Data client: %w", err)
	}
	return client, nil
}

func clientOptions(c *config.Config, accessToken string) []option.ClientOption {
	opts := []option.ClientOption{option.WithUserAgent(c.UserAgent())}
	if ts := tokenSource(accessToken); ts != nil {
		opts = append(opts, option.WithTokenSource(ts))
	}
	return opts
}

// tokenSource wraps a caller-supplied access token, or returns nil when the
// ambient default credentials should be used.
func tokenSource(accessToken string) oauth2.TokenSource {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

// ResolveProperty applies the per-call property id over the startup default
// and converts it into the resource name the Data API expects.
func ResolveProperty(propertyID string, c *config.Config) (string, error) {
	if propertyID == "" {
		propertyID = c.DefaultPropertyID()
	}
	if propertyID == "" {
		return "", fmt.Errorf("no GA4 property ID provided: set property_id on the call, or start the server with --property-id or GA4_PROPERTY_ID")
	}
	return PropertyName(propertyID), nil
}

// PropertyName converts a bare GA4 property id (e.g. "123456789") into its
// resource name. Ids already carrying the prefix pass through unchanged.
func PropertyName(propertyID string) string {
	if strings.HasPrefix(propertyID, "properties/") {
		return propertyID
	}
	return "properties/" + propertyID
}
