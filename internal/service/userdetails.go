package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"access-denied-lite/internal/apperr"
	"access-denied-lite/internal/logger"
	"access-denied-lite/internal/model"
)

type IdentityFetcher interface {
	FetchIdentity(ctx context.Context, assertion string) (*model.Identity, error)
}

type DeviceFetcher interface {
	FetchDevice(ctx context.Context, accountID, deviceID string) (json.RawMessage, error)
	FetchPosture(ctx context.Context, accountID, deviceID string) (json.RawMessage, error)
}

// Aggregator builds the combined identity, device and posture document.
//
// The identity fetch and the device fetch (other than 404) are hard
// dependencies and abort the call. Posture is soft: any failure yields {}.
type Aggregator struct {
	identity IdentityFetcher
	devices  DeviceFetcher
	sources  []DeviceIDSource
	log      zerolog.Logger
}

func NewAggregator(identity IdentityFetcher, devices DeviceFetcher, log zerolog.Logger) *Aggregator {
	return NewAggregatorWithSources(identity, devices, log,
		TokenDeviceID{},
		IdentityDeviceID{Identity: identity},
	)
}

func NewAggregatorWithSources(identity IdentityFetcher, devices DeviceFetcher, log zerolog.Logger, sources ...DeviceIDSource) *Aggregator {
	return &Aggregator{
		identity: identity,
		devices:  devices,
		sources:  sources,
		log:      logger.Component(log, "aggregator"),
	}
}

func (a *Aggregator) ResolveUserDetails(ctx context.Context, assertion string) (details *model.UserDetails, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Msg("user details resolution panicked")
			details, err = nil, apperr.Internal(fmt.Errorf("%v", r))
		}
	}()

	if assertion == "" {
		return nil, apperr.Unauthorized()
	}

	deviceID, err := a.resolveDeviceID(ctx, assertion)
	if err != nil {
		return nil, err
	}

	// The full document is fetched even when the token already carried the
	// device id; the response needs it either way.
	identity, err := a.identity.FetchIdentity(ctx, assertion)
	if err != nil {
		return nil, apperr.From(err)
	}

	device, err := a.devices.FetchDevice(ctx, identity.GatewayAccountID, deviceID)
	switch {
	case err == nil:
	case apperr.StatusOf(err) == http.StatusNotFound:
		a.log.Warn().Str("device_id", deviceID).Msg("device not found, details unavailable")
		device = model.EmptyDocument
	default:
		return nil, apperr.From(err)
	}

	posture, err := a.devices.FetchPosture(ctx, identity.GatewayAccountID, deviceID)
	if err != nil {
		a.log.Warn().Err(err).Str("device_id", deviceID).Msg("device posture unavailable")
		posture = model.EmptyDocument
	}

	return &model.UserDetails{
		Identity: identity.Raw,
		Device:   device,
		Posture:  posture,
		Resolved: identity,
	}, nil
}

func (a *Aggregator) resolveDeviceID(ctx context.Context, assertion string) (string, error) {
	for _, src := range a.sources {
		id, err := src.DeviceID(ctx, assertion)
		if err != nil {
			return "", apperr.From(err)
		}
		if id != "" {
			a.log.Debug().Str("source", src.Name()).Str("device_id", id).Msg("device id resolved")
			return id, nil
		}
		a.log.Debug().Str("source", src.Name()).Msg("no device id from source")
	}
	return "", apperr.New(http.StatusBadRequest, "Device ID not found in identity data")
}
