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

package config

import "testing"

func TestNew(t *testing.T) {
	t.Run("flag value wins over environment", func(t *testing.T) {
		t.Setenv("GA4_PROPERTY_ID", "999999")
		c := New("1.2.3", "123456")
		if got := c.DefaultPropertyID(); got != "123456" {
			t.Errorf("DefaultPropertyID() = %q, want %q", got, "123456")
		}
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("GA4_PROPERTY_ID", "999999")
		c := New("1.2.3", "")
		if got := c.DefaultPropertyID(); got != "999999" {
			t.Errorf("DefaultPropertyID() = %q, want %q", got, "999999")
		}
	})

	t.Run("no default property", func(t *testing.T) {
		t.Setenv("GA4_PROPERTY_ID", "")
		c := New("1.2.3", "")
		if got := c.DefaultPropertyID(); got != "" {
			t.Errorf("DefaultPropertyID() = %q, want empty", got)
		}
	})

	t.Run("user agent carries the version", func(t *testing.T) {
		c := New("1.2.3", "")
		if got := c.UserAgent(); got != "mcp-server-ga4/1.2.3" {
			t.Errorf("UserAgent() = %q, want %q", got, "mcp-server-ga4/1.2.3")
		}
	})
}
