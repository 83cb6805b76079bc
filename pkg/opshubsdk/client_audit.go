package opshubsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListAuditLogs returns audit entries newest first.
func (c *Client) ListAuditLogs(ctx context.Context, query AuditLogQuery) ([]AuditLog, error) {
	q := url.Values{}
	if query.Action != "" {
		q.Set("action", query.Action)
	}
	if query.TargetType != "" {
		q.Set("target_type", query.TargetType)
	}
	if query.Query != "" {
		q.Set("q", query.Query)
	}
	if query.Since != "" {
		q.Set("since", query.Since)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}

	path := "/v1/audit-logs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var logs []AuditLog
	if err := decodeJSON(resp, &logs, http.StatusOK); err != nil {
		return nil, err
	}

	return logs, nil
}
