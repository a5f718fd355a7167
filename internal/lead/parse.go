// Package lead turns the loosely shaped lead-listing webhook output into
// typed model.Lead records. Records that are not JSON objects are
// quarantined instead of being coerced.
package lead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// Known column names as the lead generator writes them.
const (
	ColName         = "Name"
	ColEmail        = "Email"
	ColPersonal     = "Personal Email"
	ColPhone        = "Phone"
	ColAudience     = "Audience Type"
	ColStatus       = "Status"
	ColCampaignID   = "campaign id"
	ColCampaignName = "campaign name"
)

var knownColumns = []string{ColName, ColEmail, ColPersonal, ColPhone, ColAudience, ColStatus, ColCampaignID, ColCampaignName}

// skipFields are webhook envelope noise, never lead data.
var skipFields = map[string]bool{
	"webhookUrl": true, "executionMode": true, "headers": true, "params": true,
	"query": true, "body": true, "id": true, "Id": true, "createdTime": true,
}

// Result is the outcome of parsing one webhook response.
type Result struct {
	Leads       []model.Lead `json:"leads"`
	Columns     []string     `json:"columns"`
	Quarantined int          `json:"quarantined"`
}

// Parse accepts a top-level array, {"body": [...]}, {"body": {"data": [...]}}
// or a single object.
func Parse(data []byte) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode lead listing: %w", err)
	}

	records := extractRecords(root)
	res := &Result{Leads: make([]model.Lead, 0, len(records))}
	extraCols := map[string]bool{}
	seenKnown := map[string]bool{}

	for _, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			res.Quarantined++
			continue
		}
		l := toLead(obj)
		for k := range obj {
			if skipFields[k] {
				continue
			}
			if isKnown(k) {
				seenKnown[k] = true
			} else {
				extraCols[k] = true
			}
		}
		res.Leads = append(res.Leads, l)
	}

	for _, c := range knownColumns {
		if seenKnown[c] {
			res.Columns = append(res.Columns, c)
		}
	}
	extras := make([]string, 0, len(extraCols))
	for c := range extraCols {
		extras = append(extras, c)
	}
	sort.Strings(extras)
	res.Columns = append(res.Columns, extras...)
	return res, nil
}

func extractRecords(root any) []any {
	switch v := root.(type) {
	case []any:
		return v
	case map[string]any:
		if body, ok := v["body"]; ok {
			if arr, ok := body.([]any); ok {
				return arr
			}
			if inner, ok := body.(map[string]any); ok {
				if arr, ok := inner["data"].([]any); ok {
					return arr
				}
			}
		}
		return []any{v}
	case nil:
		return nil
	default:
		return []any{v}
	}
}

func isKnown(k string) bool {
	for _, c := range knownColumns {
		if c == k {
			return true
		}
	}
	return false
}

func toLead(obj map[string]any) model.Lead {
	l := model.Lead{
		Name:          stringify(obj[ColName]),
		Email:         stringify(obj[ColEmail]),
		PersonalEmail: stringify(obj[ColPersonal]),
		Phone:         stringify(obj[ColPhone]),
		AudienceType:  stringify(obj[ColAudience]),
		Status:        stringify(obj[ColStatus]),
		CampaignID:    stringify(obj[ColCampaignID]),
		CampaignName:  stringify(obj[ColCampaignName]),
	}
	for k, v := range obj {
		if skipFields[k] || isKnown(k) {
			continue
		}
		if l.Extra == nil {
			l.Extra = map[string]string{}
		}
		l.Extra[k] = stringify(v)
	}
	return l
}

// stringify flattens a JSON value: arrays are joined with ", ", objects are
// re-encoded, null becomes "".
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
