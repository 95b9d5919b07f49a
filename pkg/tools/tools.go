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

package tools

import (
	"context"

	"github.com/bdmarvin1/mcp-server-ga4/pkg/config"
	"github.com/bdmarvin1/mcp-server-ga4/pkg/tools/metadata"
	"github.com/bdmarvin1/mcp-server-ga4/pkg/tools/reporting"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func Install(ctx context.Context, s *mcp.Server, c *config.Config) error {
	if err := reporting.Install(ctx, s, c); err != nil {
		return err
	}
	return metadata.Install(ctx, s, c)
}
