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
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// APIError rewrites a Data API failure into a message the calling agent can
// act on. Failures are never retried here; the agent decides whether to
// reformulate the call.
func APIError(op, property string, err error) error {
	s, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s failed for %s: %w", op, property, err)
	}
	switch s.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("authentication failed for %s: credentials are missing, invalid or expired. Set up Application Default Credentials with `gcloud auth application-default login`, or pass a valid access_token with the call: %s", property, s.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("permission denied for %s: the credentials are valid but don't have access to this property: %s", property, s.Message())
	case codes.NotFound:
		return fmt.Errorf("%s was not found; check the property ID: %s", property, s.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("the Analytics Data API rejected the %s request for %s: %s", op, property, s.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("the Analytics Data API was unreachable while handling %s for %s: %s. The request was not retried", op, property, s.Message())
	default:
		return fmt.Errorf("%s failed for %s: %w", op, property, err)
	}
}
