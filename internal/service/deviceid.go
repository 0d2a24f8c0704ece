package service

import (
	"context"

	"access-denied-lite/internal/auth"
)

// DeviceIDSource is one way of learning the caller's device id. Sources are
// tried in order; the first non-empty id wins. A returned error aborts the
// chain and is propagated as-is.
type DeviceIDSource interface {
	Name() string
	DeviceID(ctx context.Context, assertion string) (string, error)
}

// TokenDeviceID reads device_id from the assertion payload. Never fails.
type TokenDeviceID struct{}

func (TokenDeviceID) Name() string { return "token" }

func (TokenDeviceID) DeviceID(_ context.Context, assertion string) (string, error) {
	return auth.DeviceIDFromAssertion(assertion), nil
}

// IdentityDeviceID asks the access-control service for the identity document
// and reads its device id.
type IdentityDeviceID struct {
	Identity IdentityFetcher
}

func (IdentityDeviceID) Name() string { return "identity" }

func (s IdentityDeviceID) DeviceID(ctx context.Context, assertion string) (string, error) {
	id, err := s.Identity.FetchIdentity(ctx, assertion)
	if err != nil {
		return "", err
	}
	return id.DeviceID, nil
}
