package service

import (
	"context"
	"encoding/json"
	"sync"

	"access-denied-lite/internal/model"
)

type fakeIdentity struct {
	mu    sync.Mutex
	calls int
	ident *model.Identity
	err   error
}

func (f *fakeIdentity) FetchIdentity(_ context.Context, _ string) (*model.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ident, nil
}

type deviceCall struct {
	accountID string
	deviceID  string
}

type fakeDevices struct {
	device       json.RawMessage
	deviceErr    error
	posture      json.RawMessage
	postureErr   error
	postureFn    func() (json.RawMessage, error)
	deviceCalls  []deviceCall
	postureCalls []deviceCall
}

func (f *fakeDevices) FetchDevice(_ context.Context, accountID, deviceID string) (json.RawMessage, error) {
	f.deviceCalls = append(f.deviceCalls, deviceCall{accountID, deviceID})
	return f.device, f.deviceErr
}

func (f *fakeDevices) FetchPosture(_ context.Context, accountID, deviceID string) (json.RawMessage, error) {
	f.postureCalls = append(f.postureCalls, deviceCall{accountID, deviceID})
	if f.postureFn != nil {
		return f.postureFn()
	}
	return f.posture, f.postureErr
}
