package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"access-denied-lite/internal/apperr"
	"access-denied-lite/internal/auth"
	"access-denied-lite/internal/model"
)

type identityFields struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	UserUUID         string `json:"user_uuid"`
	DeviceID         string `json:"device_id"`
	GatewayAccountID string `json:"gateway_account_id"`
	Identity         *struct {
		DeviceID string `json:"device_id"`
	} `json:"identity"`
}

// FetchIdentity calls get-identity with the assertion forwarded as the
// session cookie. Under session churn the endpoint can answer with an HTML
// page instead of JSON; such responses are retried up to the configured
// number of times before giving up with a 500.
func (c *Client) FetchIdentity(ctx context.Context, assertion string) (*model.Identity, error) {
	if assertion == "" {
		return nil, apperr.Unauthorized()
	}

	url := c.accessBaseURL + "/cdn-cgi/access/get-identity"
	attempts := c.identityRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, apperr.New(http.StatusInternalServerError, "Failed to fetch identity: "+err.Error())
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Cookie", auth.AssertionCookie+"="+assertion)

		resp, err := c.do(req, "identity")
		if err != nil {
			c.log.Error().Err(err).Msg("fetch identity failed")
			return nil, apperr.New(http.StatusInternalServerError, "Failed to fetch identity: "+err.Error())
		}

		if !json.Valid(resp.body) {
			c.log.Warn().
				Int("attempt", attempt).
				Int("max_attempts", attempts).
				Int("status", resp.status).
				Msg("identity response is not JSON")
			continue
		}

		if !resp.ok() {
			return nil, apperr.FromResponse(resp.status, resp.body)
		}
		return c.parseIdentity(resp.body), nil
	}

	return nil, apperr.New(http.StatusInternalServerError, "Failed to fetch identity after retrying.")
}

func (c *Client) parseIdentity(body []byte) *model.Identity {
	id := &model.Identity{Raw: json.RawMessage(body)}

	var f identityFields
	if err := json.Unmarshal(body, &f); err != nil {
		c.log.Warn().Err(err).Msg("identity document has unexpected shape")
		return id
	}

	id.Name = f.Name
	id.Email = f.Email
	id.UserUUID = f.UserUUID
	id.GatewayAccountID = f.GatewayAccountID
	id.DeviceID = f.DeviceID
	if id.DeviceID == "" && f.Identity != nil {
		id.DeviceID = f.Identity.DeviceID
	}
	return id
}
