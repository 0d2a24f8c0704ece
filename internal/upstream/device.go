package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"access-denied-lite/internal/apperr"
)

// FetchDevice returns the device record for accountID/deviceID. A 404 comes
// back as an *apperr.Error with Status 404 so callers can treat it as absence.
func (c *Client) FetchDevice(ctx context.Context, accountID, deviceID string) (json.RawMessage, error) {
	path := "/accounts/" + url.PathEscape(accountID) + "/devices/" + url.PathEscape(deviceID)
	return c.getDocument(ctx, "device", path, deviceID)
}

// FetchPosture returns raw posture-check results. enrich=false skips the
// descriptive rule lookups, which are slow.
func (c *Client) FetchPosture(ctx context.Context, accountID, deviceID string) (json.RawMessage, error) {
	path := "/accounts/" + url.PathEscape(accountID) + "/devices/" + url.PathEscape(deviceID) + "/posture/check?enrich=false"
	return c.getDocument(ctx, "posture", path, deviceID)
}

func (c *Client) getDocument(ctx context.Context, target, path, deviceID string) (json.RawMessage, error) {
	req, err := c.newServiceRequest(ctx, http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	c.log.Debug().Str("target", target).Str("device_id", deviceID).Msg("fetching device document")
	resp, err := c.do(req, target)
	if err != nil {
		c.log.Error().Err(err).Str("target", target).Str("device_id", deviceID).Msg("device request failed")
		return nil, apperr.Internal(err)
	}

	if !resp.ok() {
		c.log.Warn().
			Str("target", target).
			Str("device_id", deviceID).
			Int("status", resp.status).
			Bytes("body", resp.body).
			Msg("device request returned error status")
		return nil, apperr.FromResponse(resp.status, resp.body)
	}

	if !json.Valid(resp.body) {
		return nil, apperr.Internal(errors.New(target + " response is not JSON"))
	}
	return json.RawMessage(resp.body), nil
}
