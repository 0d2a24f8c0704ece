package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var ErrAppNameMissing = errors.New("application has no name")

type appResponse struct {
	Result *struct {
		Name string `json:"name"`
	} `json:"result"`
}

// AppName resolves an Access application id to its display name.
func (c *Client) AppName(ctx context.Context, appID string) (string, error) {
	path := "/accounts/" + url.PathEscape(c.accountID) + "/access/apps/" + url.PathEscape(appID)
	req, err := c.newServiceRequest(ctx, http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req, "app")
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", fmt.Errorf("app %s: status %d", appID, resp.status)
	}

	var out appResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return "", fmt.Errorf("app %s: %w", appID, err)
	}
	if out.Result == nil || out.Result.Name == "" {
		return "", ErrAppNameMissing
	}
	return out.Result.Name, nil
}
