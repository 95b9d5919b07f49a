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

package ga4

import (
	"testing"

	"github.com/bdmarvin1/mcp-server-ga4/pkg/config"
)

func TestTokenSource(t *testing.T) {
	tests := []struct {
		name        string
		accessToken string
		wantToken   string
		wantADC     bool
	}{
		{
			name:        "empty token falls back to ADC",
			accessToken: "",
			wantADC:     true,
		},
		{
			name:        "whitespace-only token falls back to ADC",
			accessToken: "   \t",
			wantADC:     true,
		},
		{
			name:        "token wins over ADC",
			accessToken: "ya29.test-token",
			wantToken:   "ya29.test-token",
		},
		{
			name:        "token is trimmed",
			accessToken: "  ya29.test-token\n",
			wantToken:   "ya29.test-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := tokenSource(tt.accessToken)
			if tt.wantADC {
				if ts != nil {
					t.Fatalf("tokenSource(%q) = %v, want nil (ADC)", tt.accessToken, ts)
				}
				return
			}
			if ts == nil {
				t.Fatalf("tokenSource(%q) = nil, want static token source", tt.accessToken)
			}
			tok, err := ts.Token()
			if err != nil {
				t.Fatalf("Token() failed: %v", err)
			}
			if tok.AccessToken != tt.wantToken {
				t.Errorf("Token().AccessToken = %q, want %q", tok.AccessToken, tt.wantToken)
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	c := config.New("test", "123456789")

	// ADC path carries only the user agent option.
	if got := len(clientOptions(c, "")); got != 1 {
		t.Errorf("clientOptions() with no token returned %d options, want 1", got)
	}
	// Token path adds a token source on top.
	if got := len(clientOptions(c, "ya29.test-token")); got != 2 {
		t.Errorf("clientOptions() with token returned %d options, want 2", got)
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		propertyID string
		want       string
	}{
		{"123456789", "properties/123456789"},
		{"properties/123456789", "properties/123456789"},
	}
	for _, tt := range tests {
		if got := PropertyName(tt.propertyID); got != tt.want {
			t.Errorf("PropertyName(%q) = %q, want %q", tt.propertyID, got, tt.want)
		}
	}
}

func TestResolveProperty(t *testing.T) {
	withDefault := config.New("test", "111111")
	noDefault := config.New("test", "")

	tests := []struct {
		name       string
		propertyID string
		conf       *config.Config
		want       string
		wantErr    bool
	}{
		{
			name:       "per-call id wins over default",
			propertyID: "222222",
			conf:       withDefault,
			want:       "properties/222222",
		},
		{
			name: "falls back to default",
			conf: withDefault,
			want: "properties/111111",
		},
		{
			name:    "no id anywhere",
			conf:    noDefault,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProperty(tt.propertyID, tt.conf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveProperty() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveProperty() = %q, want %q", got, tt.want)
			}
		})
	}
}
