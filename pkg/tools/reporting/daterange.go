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

package reporting

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
)

const isoDate = "2006-01-02"

// DateRange accepts the two shapes the tool protocol sends: a named alias
// string ("today", "yesterday", "last7days", "last30days") or an object with
// explicit start_date / end_date calendar dates.
type DateRange struct {
	Alias     string `json:"-"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

func (d *DateRange) UnmarshalJSON(data []byte) error {
	var alias string
	if err := json.Unmarshal(data, &alias); err == nil {
		*d = DateRange{Alias: alias}
		return nil
	}
	// Shadow type to avoid recursing into this method.
	type plain DateRange
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("date_range must be an alias string or an object with start_date and end_date: %w", err)
	}
	*d = DateRange(p)
	return nil
}

// resolve expands the date range into the concrete pair sent to the API.
// Alias expansion is relative to now; an alias range always satisfies
// start <= end <= today.
func (d *DateRange) resolve(now time.Time) (*analyticsdatapb.DateRange, error) {
	if d == nil {
		return nil, fmt.Errorf("date_range is required: use an alias like 'last7days' or an object with start_date and end_date")
	}
	if d.Alias != "" {
		today := now.Format(isoDate)
		switch d.Alias {
		case "today":
			return &analyticsdatapb.DateRange{StartDate: today, EndDate: today}, nil
		case "yesterday":
			y := now.AddDate(0, 0, -1).Format(isoDate)
			return &analyticsdatapb.DateRange{StartDate: y, EndDate: y}, nil
		case "last7days":
			return &analyticsdatapb.DateRange{StartDate: now.AddDate(0, 0, -6).Format(isoDate), EndDate: today}, nil
		case "last30days":
			return &analyticsdatapb.DateRange{StartDate: now.AddDate(0, 0, -29).Format(isoDate), EndDate: today}, nil
		default:
			return nil, fmt.Errorf("unknown date range alias %q: valid aliases are today, yesterday, last7days, last30days", d.Alias)
		}
	}
	if d.StartDate == "" || d.EndDate == "" {
		return nil, fmt.Errorf("date_range object must include both start_date and end_date")
	}
	start, err := time.Parse(isoDate, d.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", d.StartDate)
	}
	end, err := time.Parse(isoDate, d.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", d.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("start_date %s is after end_date %s", d.StartDate, d.EndDate)
	}
	// Explicit dates pass through verbatim.
	return &analyticsdatapb.DateRange{StartDate: d.StartDate, EndDate: d.EndDate}, nil
}
