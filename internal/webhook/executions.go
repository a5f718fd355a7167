package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Execution is one workflow run as reported by the execution-listing hook.
type Execution struct {
	ID        FlexString `json:"id"`
	Finished  bool       `json:"finished"`
	Mode      string     `json:"mode"`
	StartedAt *time.Time `json:"startedAt"`
	StoppedAt *time.Time `json:"stoppedAt"`
}

// FlexString accepts both JSON strings and numbers.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(strings.Trim(string(b), `"`))
	return nil
}

// ListExecutions returns data[0].data of the listing hook for workflowID.
func (c *Client) ListExecutions(ctx context.Context, workflowID string) ([]Execution, error) {
	endpoint := withQuery(c.cfg.ExecutionsURL, map[string]string{"workflowId": workflowID})
	data, err := c.do(ctx, http.MethodGet, endpoint, nil, 0)
	if err != nil {
		return nil, err
	}
	var pages []struct {
		Data []Execution `json:"data"`
	}
	if err := decode(data, &pages); err != nil {
		return nil, err
	}
	if len(pages) == 0 || pages[0].Data == nil {
		return []Execution{}, nil
	}
	return pages[0].Data, nil
}

// GetExecution returns one execution's detail, unwrapping a single-element
// array.
func (c *Client) GetExecution(ctx context.Context, id, workflowID string) (json.RawMessage, error) {
	endpoint := withQuery(c.cfg.ExecutionDetailURL, map[string]string{"id": id, "workflowId": workflowID})
	data, err := c.do(ctx, http.MethodGet, endpoint, nil, 0)
	if err != nil {
		return nil, err
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) == 0 {
			return json.RawMessage("null"), nil
		}
		return arr[0], nil
	}
	if !json.Valid(data) {
		return nil, decode(data, new(any))
	}
	return json.RawMessage(data), nil
}
