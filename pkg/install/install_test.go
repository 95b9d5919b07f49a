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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGeminiCLIExtension(t *testing.T) {
	tmpDir := t.TempDir()

	opts := &InstallOptions{
		version:    "0.1.0-test",
		installDir: tmpDir,
		exePath:    "/usr/local/bin/mcp-server-ga4",
	}
	if err := GeminiCLIExtension(opts); err != nil {
		t.Fatalf("GeminiCLIExtension() failed: %v", err)
	}

	extensionDir := filepath.Join(tmpDir, ".gemini", "extensions", "mcp-server-ga4")
	manifestPath := filepath.Join(extensionDir, "gemini-extension.json")
	geminiMdPath := filepath.Join(extensionDir, "GEMINI.md")

	if _, err := os.Stat(geminiMdPath); os.IsNotExist(err) {
		t.Errorf("Expected GEMINI.md file to be created at %s, but it was not", geminiMdPath)
	}

	manifestData, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("Failed to read manifest file: %v", err)
	}

	expected := map[string]any{
		"name":            "mcp-server-ga4",
		"version":         "0.1.0-test",
		"description":     "Enable MCP-compatible AI agents to query Google Analytics 4.",
		"contextFileName": "GEMINI.md",
		"mcpServers": map[string]any{
			"ga4": map[string]any{
				"command": "/usr/local/bin/mcp-server-ga4",
			},
		},
	}

	var actual map[string]any
	if err := json.Unmarshal(manifestData, &actual); err != nil {
		t.Fatalf("Failed to unmarshal actual JSON: %v", err)
	}

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("Manifest content mismatch. Diff:\n%v", diff)
	}
}

func TestCursorMCPExtension(t *testing.T) {
	tmpDir := t.TempDir()

	// Pre-existing config with an unrelated server must survive the install.
	mcpDir := filepath.Join(tmpDir, ".cursor")
	if err := os.MkdirAll(mcpDir, 0755); err != nil {
		t.Fatalf("os.MkdirAll() failed: %v", err)
	}
	existing := `{"mcpServers": {"other": {"command": "/bin/other"}}}`
	if err := os.WriteFile(filepath.Join(mcpDir, "mcp.json"), []byte(existing), 0644); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}

	opts := &InstallOptions{
		version:    "0.1.0-test",
		installDir: tmpDir,
		exePath:    "/usr/local/bin/mcp-server-ga4",
	}
	if err := CursorMCPExtension(opts); err != nil {
		t.Fatalf("CursorMCPExtension() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(mcpDir, "mcp.json"))
	if err != nil {
		t.Fatalf("Failed to read mcp.json: %v", err)
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		t.Fatalf("Failed to unmarshal mcp.json: %v", err)
	}

	expected := map[string]any{
		"mcpServers": map[string]any{
			"other": map[string]any{
				"command": "/bin/other",
			},
			"mcp-server-ga4": map[string]any{
				"command": "/usr/local/bin/mcp-server-ga4",
				"type":    "stdio",
			},
		},
	}

	if diff := cmp.Diff(expected, config); diff != "" {
		t.Errorf("mcp.json content mismatch. Diff:\n%v", diff)
	}

	rulePath := filepath.Join(mcpDir, "rules", "mcp-server-ga4.mdc")
	if _, err := os.Stat(rulePath); os.IsNotExist(err) {
		t.Errorf("Expected rule file to be created at %s, but it was not", rulePath)
	}
}
