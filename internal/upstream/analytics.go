package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"access-denied-lite/internal/apperr"
	"access-denied-lite/internal/model"
)

const isoMillis = "2006-01-02T15:04:05.000Z"

const failedLoginsQuery = `
query {
  viewer {
    accounts(filter: {accountTag: %s}) {
      accessLoginRequestsAdaptiveGroups(
        limit: %d,
        filter: {
          datetime_geq: %s,
          datetime_leq: %s,
          userUuid: %s,
          isSuccessfulLogin: 0
        },
        orderBy: [datetime_DESC]
      ) {
        dimensions {
          datetime
          isSuccessfulLogin
          hasWarpEnabled
          hasGatewayEnabled
          ipAddress
          userUuid
          identityProvider
          country
          deviceId
          mtlsStatus
          approvingPolicyId
          appId
        }
      }
    }
  }
}`

type graphqlResponse struct {
	Data struct {
		Viewer struct {
			Accounts []struct {
				Groups []model.LoginEvent `json:"accessLoginRequestsAdaptiveGroups"`
			} `json:"accounts"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// literal renders s as a quoted GraphQL string literal.
func literal(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func buildFailedLoginsQuery(accountID string, q model.LoginQuery) string {
	return fmt.Sprintf(failedLoginsQuery,
		literal(accountID),
		q.Limit,
		literal(q.From.UTC().Format(isoMillis)),
		literal(q.To.UTC().Format(isoMillis)),
		literal(q.UserUUID),
	)
}

// FailedLogins runs the analytics query for unsuccessful logins of one user,
// most recent first. Any failure of the query itself is a 500.
func (c *Client) FailedLogins(ctx context.Context, q model.LoginQuery) ([]model.LoginEvent, error) {
	payload, err := json.Marshal(map[string]string{"query": buildFailedLoginsQuery(c.accountID, q)})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	req, err := c.newServiceRequest(ctx, http.MethodPost, c.apiBaseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	resp, err := c.do(req, "analytics")
	if err != nil {
		c.log.Error().Err(err).Msg("login history query failed")
		return nil, apperr.New(http.StatusInternalServerError, "Failed to fetch history data")
	}
	if !resp.ok() {
		c.log.Error().Int("status", resp.status).Bytes("body", resp.body).Msg("login history query returned error status")
		return nil, apperr.New(http.StatusInternalServerError, "Failed to fetch history data")
	}

	var out graphqlResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		c.log.Error().Err(err).Msg("login history response is not valid")
		return nil, apperr.New(http.StatusInternalServerError, "Failed to fetch history data")
	}
	if len(out.Errors) > 0 && len(out.Data.Viewer.Accounts) == 0 {
		c.log.Error().Str("graphql_error", out.Errors[0].Message).Msg("login history query rejected")
		return nil, apperr.New(http.StatusInternalServerError, "Failed to fetch history data")
	}

	if len(out.Data.Viewer.Accounts) == 0 || out.Data.Viewer.Accounts[0].Groups == nil {
		return []model.LoginEvent{}, nil
	}
	return out.Data.Viewer.Accounts[0].Groups, nil
}
