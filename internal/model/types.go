package model

import (
	"encoding/json"
	"time"
)

// Identity is the access-control service's view of the current user. Raw is
// the document exactly as received and is what clients see; the typed fields
// are the ones the backend needs for further lookups.
type Identity struct {
	Raw json.RawMessage

	Name             string
	Email            string
	UserUUID         string
	DeviceID         string
	GatewayAccountID string
}

// EmptyDocument stands in for a device or posture document that could not be
// resolved. Clients render it as "information unavailable".
var EmptyDocument = json.RawMessage(`{}`)

// UserDetails is the combined identity, device and posture document. Its shape
// is stable under partial failure.
type UserDetails struct {
	Identity json.RawMessage `json:"identity"`
	Device   json.RawMessage `json:"device"`
	Posture  json.RawMessage `json:"posture"`

	// Resolved carries the typed identity fields for follow-up lookups.
	Resolved *Identity `json:"-"`
}

// LoginDimensions mirrors one accessLoginRequestsAdaptiveGroups row. The two
// enablement flags are pointers because an absent flag is not the same as 0.
type LoginDimensions struct {
	Datetime          string `json:"datetime"`
	IsSuccessfulLogin int    `json:"isSuccessfulLogin"`
	HasWarpEnabled    *int   `json:"hasWarpEnabled"`
	HasGatewayEnabled *int   `json:"hasGatewayEnabled"`
	IPAddress         string `json:"ipAddress"`
	UserUUID          string `json:"userUuid"`
	IdentityProvider  string `json:"identityProvider"`
	Country           string `json:"country"`
	DeviceID          string `json:"deviceId"`
	MTLSStatus        string `json:"mtlsStatus"`
	ApprovingPolicyID string `json:"approvingPolicyId"`
	AppID             string `json:"appId"`
}

type LoginEvent struct {
	Dimensions      LoginDimensions `json:"dimensions"`
	ApplicationName string          `json:"applicationName"`
	Reason          string          `json:"reason"`
}

type LoginHistory struct {
	LoginHistory []LoginEvent `json:"loginHistory"`
}

// LoginQuery scopes a failed-login lookup to one user and time window.
type LoginQuery struct {
	UserUUID string
	From     time.Time
	To       time.Time
	Limit    int
}
