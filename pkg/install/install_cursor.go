// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package install

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// cursorRuleHeader is the header content for the Cursor rule file.
const cursorRuleHeader = `---
name: GA4 MCP Instructions
description: Provides guidance for using the mcp-server-ga4 tool with Cursor.
alwaysApply: true
---

# GA4 MCP Tool Instructions

This rule provides context for using the mcp-server-ga4 tool within Cursor.

`

// CursorMCPExtension installs the GA4 MCP server as a Cursor MCP extension.
func CursorMCPExtension(opts *InstallOptions) error {
	mcpDir := filepath.Join(opts.installDir, ".cursor")

	if err := os.MkdirAll(mcpDir, 0755); err != nil {
		return fmt.Errorf("could not create Cursor directory at %s: %w", mcpDir, err)
	}
	mcpPath := filepath.Join(mcpDir, "mcp.json")

	// Merge into the existing configuration to avoid data loss.
	var config map[string]interface{}
	if data, err := os.ReadFile(mcpPath); err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("could not parse existing MCP configuration: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("could not read existing MCP configuration: %w", err)
	} else {
		config = make(map[string]interface{})
	}

	mcpServers, ok := config["mcpServers"].(map[string]interface{})
	if !ok {
		if _, exists := config["mcpServers"]; exists {
			log.Printf("Warning: mcpServers in Cursor MCP config is not a map, creating new one")
		}
		mcpServers = make(map[string]interface{})
		config["mcpServers"] = mcpServers
	}

	mcpServers["mcp-server-ga4"] = map[string]interface{}{
		"command": opts.exePath,
		"type":    "stdio",
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal MCP configuration: %w", err)
	}

	if err := os.WriteFile(mcpPath, data, 0644); err != nil {
		return fmt.Errorf("could not write MCP configuration: %w", err)
	}

	rulesDir := filepath.Join(mcpDir, "rules")
	if err := os.MkdirAll(rulesDir, 0755); err != nil {
		return fmt.Errorf("could not create rules directory: %w", err)
	}

	ruleContent := append([]byte(cursorRuleHeader), GeminiMarkdown...)

	rulePath := filepath.Join(rulesDir, "mcp-server-ga4.mdc")
	if err := os.WriteFile(rulePath, ruleContent, 0644); err != nil {
		return fmt.Errorf("could not write mcp-server-ga4 rule file: %w", err)
	}

	return nil
}
