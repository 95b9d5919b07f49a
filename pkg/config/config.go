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

import (
	"os"
)

// Config carries the process-wide settings resolved once at startup and
// passed explicitly into every tool.
type Config struct {
	userAgent         string
	defaultPropertyID string
}

func (c *Config) UserAgent() string {
	return c.userAgent
}

// DefaultPropertyID returns the GA4 property used when a call doesn't name
// one. May be empty; individual calls then fail until they provide their own.
func (c *Config) DefaultPropertyID() string {
	return c.defaultPropertyID
}

// New builds the startup configuration. propertyID comes from the
// --property-id flag; when empty, the GA4_PROPERTY_ID environment variable is
// used instead.
func New(version, propertyID string) *Config {
	if propertyID == "" {
		propertyID = os.Getenv("GA4_PROPERTY_ID")
	}
	return &Config{
		userAgent:         "mcp-server-ga4/" + version,
		defaultPropertyID: propertyID,
	}
}
